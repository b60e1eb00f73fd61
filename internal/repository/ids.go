package repository

import "github.com/google/uuid"

// validID reports whether id fits a UUID column in its canonical form. Ids
// that do not can never match a row, so lookups report them as not found
// instead of sending them to the database.
func validID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}
