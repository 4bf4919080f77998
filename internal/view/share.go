package view

import (
	"fmt"
	"net/url"
	"strings"

	"dolapkapak/internal/domain"
)

const shareBaseURL = "https://api.whatsapp.com/send?text="

type Share struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// ShareText formats a pending order for a messaging app. It does no I/O.
func ShareText(p domain.PendingOrder) string {
	var b strings.Builder
	b.WriteString("*Yeni DolapKapak Siparişi Özeti*\n\n")
	if len(p.Items) == 0 {
		b.WriteString("Ürün bulunmuyor.")
	}
	for i, it := range p.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %d adet %sx%smm %s (%s)",
			it.Quantity, Millimetres(it.Width), Millimetres(it.Height), it.Model.DisplayName(), it.Color.DisplayName())
	}
	b.WriteString("\n\n*Yaklaşık Fiyat:* ")
	b.WriteString(Currency(p.Price))
	b.WriteString("\n\nBu sipariş DolapKapak uygulaması üzerinden oluşturulmuştur.")
	return b.String()
}

func NewShare(p domain.PendingOrder) Share {
	text := ShareText(p)
	// spaces as %20, not '+'
	return Share{Text: text, URL: shareBaseURL + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")}
}
