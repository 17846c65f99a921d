package parser

import (
	"strconv"
	"strings"

	"github.com/rmuktader/ccparse/internal/statement"
)

// extractPoints finds the rewards points balance: on a row carrying the
// points label, the rightmost token that parses as a comma-separated integer
// is the balance. Rows matching the label but holding no parseable integer
// are passed over in case the value landed on a later row.
func extractPoints(rows []Row) (int, error) {
	for _, row := range rows {
		if !strings.Contains(row.joined(), pointsLabel) {
			continue
		}
		for i := len(row) - 1; i >= 0; i-- {
			n, err := strconv.Atoi(strings.ReplaceAll(row[i].Text, ",", ""))
			if err == nil {
				return n, nil
			}
		}
	}
	return 0, &statement.DataIntegrityError{Field: "points balance (" + pointsLabel + ")"}
}
