package smtp

import (
	"bytes"
	"html/template"

	"github.com/srgjo27/ticket_gate/internal/core/ports"
)

const qrContentID = "ticket-qr"

var ticketTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Your Ticket</title>
</head>
<body style="font-family: Helvetica, Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
    <div style="background: #ff6b6b; color: #ffffff; padding: 32px 20px; text-align: center;">
      <h1 style="margin: 0;">Ticket Confirmed!</h1>
      <p style="margin: 10px 0 0;">{{.Brand}}</p>
    </div>
    <div style="padding: 30px; text-align: center;">
      <table cellpadding="0" cellspacing="0" style="width: 100%; margin: 20px 0;">
        <tr><td style="text-align: left; font-weight: bold;">Name:</td><td style="text-align: right;">{{.BuyerName}}</td></tr>
        <tr><td style="text-align: left; font-weight: bold;">Persons:</td><td style="text-align: right;">{{.PersonCount}}</td></tr>
        <tr><td style="text-align: left; font-weight: bold;">Location:</td><td style="text-align: right;">{{.Location}}</td></tr>
        <tr><td style="text-align: left; font-weight: bold;">Amount Paid:</td><td style="text-align: right;">{{.Amount}}</td></tr>
        <tr><td style="text-align: left; font-weight: bold;">Ticket ID:</td><td style="text-align: right;">{{.TicketCode}}</td></tr>
      </table>
      <h3>Scan this QR code at the counter</h3>
      <img src="cid:{{.ContentID}}" alt="Ticket QR Code" style="width: 220px; height: 220px;" />
      <ul style="text-align: left;">
        <li>One-time use only</li>
        <li>No refunds after scanning</li>
        <li>Keep this email safe as proof of purchase</li>
      </ul>
    </div>
  </div>
</body>
</html>
`))

type ticketView struct {
	Brand       string
	BuyerName   string
	PersonCount int
	Location    string
	Amount      string
	TicketCode  string
	ContentID   string
}

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
}

func formatAmount(mail ports.TicketMail) string {
	amount := mail.Amount.StringFixed(2)
	if symbol, ok := currencySymbols[mail.Currency]; ok {
		return symbol + amount
	}
	if mail.Currency == "" {
		return amount
	}
	return amount + " " + mail.Currency
}

func renderTicket(brand string, mail ports.TicketMail) (string, error) {
	var buf bytes.Buffer
	err := ticketTemplate.Execute(&buf, ticketView{
		Brand:       brand,
		BuyerName:   mail.BuyerName,
		PersonCount: mail.PersonCount,
		Location:    mail.Location,
		Amount:      formatAmount(mail),
		TicketCode:  mail.TicketCode,
		ContentID:   qrContentID,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
