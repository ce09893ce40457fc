package loansvc

import (
	"strconv"

	"librarydesk/model"
)

// defaultCopyID is the implicit single copy id for books that have no
// enumerated copies: the book's own id.
func defaultCopyID(b *model.Book) string {
	return strconv.FormatInt(b.ID, 10)
}

// validCopy reports whether copyID names a physical copy of b.
func validCopy(b *model.Book, copyID string) bool {
	if len(b.CopyIDs) == 0 {
		return copyID == defaultCopyID(b)
	}
	for _, cid := range b.CopyIDs {
		if cid == copyID {
			return true
		}
	}
	return false
}

// copyIssued reports whether an open loan already holds (bookID, copyID).
// excludeID skips one loan so an edit does not conflict with itself;
// pass 0 to exclude nothing.
func copyIssued(open []model.Loan, bookID int64, copyID string, excludeID int64) bool {
	for _, l := range open {
		if l.ID == excludeID {
			continue
		}
		if l.Open() && l.BookID == bookID && l.CopyID == copyID {
			return true
		}
	}
	return false
}
