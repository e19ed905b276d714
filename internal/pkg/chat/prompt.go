package chat

import (
	"strings"
	"text/template"

	"github.com/shopspring/decimal"
	"github.com/zakatkuy/amil/internal/pkg/goldprice"
	"github.com/zakatkuy/amil/internal/pkg/utils"
)

var systemPrompt = template.Must(template.New("system").Parse(
	`Kamu adalah Zaki, asisten amil zakat yang ramah dan menjawab dalam bahasa Indonesia.
Kamu membantu pengguna memahami laporan pengumpulan dan penyaluran zakat BAZNAS per provinsi,
serta menghitung kewajiban zakat mereka.

Harga jual emas hari ini: {{.GoldPrice}} per gram.
Nisab zakat maal setara {{.NisabGrams}} gram emas, yaitu {{.Nisab}}.
Zakat maal adalah 2,5% dari harta yang telah mencapai nisab dan haul.

Jawab dengan teks biasa tanpa blok kode.`))

type promptData struct {
	GoldPrice  string
	NisabGrams string
	Nisab      string
}

// RenderSystemPrompt fills the system instruction with the current gold sell price.
func RenderSystemPrompt(goldPrice decimal.Decimal) (string, error) {
	var b strings.Builder
	err := systemPrompt.Execute(&b, promptData{
		GoldPrice:  utils.FormatRupiah(goldPrice),
		NisabGrams: goldprice.NisabGrams.String(),
		Nisab:      utils.FormatRupiah(goldprice.Nisab(goldPrice)),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
