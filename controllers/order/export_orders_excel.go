package orderControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/essience-store/storefront-api/store"
)

// GET /admin/orders/export
func ExportOrdersToExcel(s *store.ShopStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders := s.Orders()

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{"Ref", "Date", "Status", "Total", "Items", "Products"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.Ref)
			row.AddCell().SetValue(o.Date)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.Total)

			count := 0
			var names []string
			for _, item := range o.Items {
				count += item.Quantity
				names = append(names, item.Name)
			}
			row.AddCell().SetValue(count)
			row.AddCell().SetValue(strings.Join(names, ", "))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
