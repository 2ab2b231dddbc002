package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/talkincode/streamstore/internal/domain"
)

const sheet = "Sheet1"

// ProductRow is one line of the price list export.
type ProductRow struct {
	ID           int64   `csv:"id"`
	ServiceID    int64   `csv:"service_id"`
	Service      string  `csv:"service"`
	Name         string  `csv:"name"`
	Price        float64 `csv:"price"`
	Description  string  `csv:"description"`
	Observations string  `csv:"observations"`
}

var headers = []string{"id", "service_id", "service", "name", "price", "description", "observations"}

// Rows joins products with their service names, ordered by service then id.
func Rows(services []domain.Service, products []domain.Product) []ProductRow {
	names := make(map[int64]string, len(services))
	for _, s := range services {
		names[s.ID] = s.Name
	}
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, ProductRow{
			ID:           p.ID,
			ServiceID:    p.ServiceID,
			Service:      names[p.ServiceID],
			Name:         p.Name,
			Price:        p.Price,
			Description:  p.Description,
			Observations: p.Observations,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ServiceID != rows[j].ServiceID {
			return rows[i].ServiceID < rows[j].ServiceID
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func WriteCSV(w io.Writer, rows []ProductRow) error {
	if len(rows) == 0 {
		// gocsv writes nothing for an empty slice
		_, err := fmt.Fprintln(w, strings.Join(headers, ","))
		return err
	}
	return errors.Wrap(gocsv.Marshal(&rows, w), "write csv")
}

func WriteXLSX(w io.Writer, rows []ProductRow) error {
	f := excelize.NewFile()
	for i, h := range headers {
		f.SetCellValue(sheet, axis(i, 1), h)
	}
	for n, r := range rows {
		line := n + 2
		values := []interface{}{r.ID, r.ServiceID, r.Service, r.Name, r.Price, r.Description, r.Observations}
		for i, v := range values {
			f.SetCellValue(sheet, axis(i, line), v)
		}
	}
	return errors.Wrap(f.Write(w), "write xlsx")
}

func axis(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}
