package view

import "strings"

// FilterFineRows narrows fine rows by a case-insensitive search over member
// name and book title, and by exact fine type. Empty arguments mean no
// filtering on that axis.
func FilterFineRows(rows []FineRow, search, fineType string) []FineRow {
	search = strings.ToLower(strings.TrimSpace(search))
	matched := []FineRow{}
	for _, row := range rows {
		if fineType != "" && row.Fine.Type != fineType {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(row.MemberName), search) &&
			!strings.Contains(strings.ToLower(row.BookTitle), search) {
			continue
		}
		matched = append(matched, row)
	}
	return matched
}
