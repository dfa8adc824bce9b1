package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/saucerburger/pos-service/internal/order"
)

// emailTemplate mirrors the backup email the restaurant receives: a summary
// block followed by one table row per line item.
var emailTemplate = template.Must(template.New("backup-email").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 1200px; margin: 0 auto;">
  <h2 style="color: #333; text-align: center;">Saucer Burger - Orders Backup</h2>

  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin-bottom: 20px;">
    <h3 style="margin: 0 0 10px 0; color: #555;">Backup Summary</h3>
    <p style="margin: 5px 0;"><strong>Total Orders:</strong> {{.TotalOrders}}</p>
    <p style="margin: 5px 0;"><strong>Total Items:</strong> {{.TotalItems}}</p>
    <p style="margin: 5px 0;"><strong>Total Revenue:</strong> {{.TotalRevenue}}</p>
    <p style="margin: 5px 0;"><strong>Backup Date:</strong> {{.BackupDate}}</p>
  </div>

  <table style="border-collapse: collapse; width: 100%; font-size: 12px;">
    <thead>
      <tr style="background-color: #f8f9fa;">
        <th style="border: 1px solid #ddd; padding: 10px;">Order ID</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Order Timestamp</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Main Item</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Quantity</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Protein</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Load</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Type</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Sauce</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Drink</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Side Sauce</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Add Ons</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Remarks</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Payment Mode</th>
        <th style="border: 1px solid #ddd; padding: 10px;">Price (GEL)</th>
      </tr>
    </thead>
    <tbody>
      {{range .Rows}}
      <tr>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{.OrderNumber}}</td>
        <td style="border: 1px solid #ddd; padding: 8px;">{{.Timestamp}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{.MainItem}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{.Quantity}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{.Protein}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{.Load}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{.Type}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{.Sauce}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{.Drink}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{.SauceCup}}</td>
        <td style="border: 1px solid #ddd; padding: 8px;">{{.AddOns}}</td>
        <td style="border: 1px solid #ddd; padding: 8px;">{{.Remarks}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{.PaymentMode}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: right;">{{.Price}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div style="text-align: center; margin-top: 30px; padding: 20px; background-color: #f8f9fa; border-radius: 5px;">
    <p style="margin: 0; color: #666; font-size: 14px;">Generated by Saucer Burger Management System</p>
  </div>
</div>
`))

type emailRow struct {
	OrderNumber int
	Timestamp   string
	MainItem    string
	Quantity    int
	Protein     string
	Load        string
	Type        string
	Sauce       string
	Drink       string
	SauceCup    string
	AddOns      string
	Remarks     string
	PaymentMode string
	Price       string
}

type emailData struct {
	TotalOrders  int
	TotalItems   int
	TotalRevenue string
	BackupDate   string
	Rows         []emailRow
}

// EmailHTML renders the HTML document sent as the backup email body.
func EmailHTML(orders []order.Order, now time.Time) (string, error) {
	data := emailData{
		TotalOrders: len(orders),
		BackupDate:  now.Format("02/01/2006, 15:04:05"),
	}

	totalRevenue := 0.0
	for _, o := range orders {
		totalRevenue += o.TotalPrice
		for _, item := range o.Items {
			data.TotalItems += item.Quantity
			d := ParseItemDetails(item.MenuItem.Name)
			data.Rows = append(data.Rows, emailRow{
				OrderNumber: o.OrderNumber,
				Timestamp:   o.Timestamp.Format("02/01/2006, 15:04:05"),
				MainItem:    d.MainItem,
				Quantity:    item.Quantity,
				Protein:     d.Protein,
				Load:        d.Load,
				Type:        d.Type,
				Sauce:       orNA(item.Sauce),
				Drink:       comboOnly(d.Type, item.Drink),
				SauceCup:    comboOnly(d.Type, item.SauceCup),
				AddOns:      orNA(addOnList(item)),
				Remarks:     orNA(item.Remarks),
				PaymentMode: string(o.PaymentMode),
				Price:       fmt.Sprintf("₾%.2f", item.LineTotal()),
			})
		}
	}
	data.TotalRevenue = fmt.Sprintf("₾%.2f", totalRevenue)

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("export: failed to render backup email: %w", err)
	}
	return buf.String(), nil
}
