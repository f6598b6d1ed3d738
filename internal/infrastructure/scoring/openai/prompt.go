package openai

import "fmt"

const (
	scoringSystemPrompt = "Sen Türkiye e-ticaret pazarı uzmanı bir AI asistanısın. Ürün potansiyel analizlerinde doğru ve gerçekçi değerlendirmeler yaparsın."

	chatSystemPrompt = "Sen Trendwyse AI asistanısın. Türkiye e-ticaret pazarı, ürün analizi, tedarik zinciri ve AI destekli karar alma konularında uzman yardım sağlarsın. Türkçe yanıt ver."

	unspecifiedCategory = "Belirtilmemiş"
)

// scoringUserPrompt asks for the JSON object the analysis service validates.
func scoringUserPrompt(productName, category string) string {
	if category == "" {
		category = unspecifiedCategory
	}
	return fmt.Sprintf(`Türkiye'deki e-ticaret pazarı için "%s" adlı ürünün potansiyel skorunu analiz et.
Kategori: %s

Lütfen aşağıdaki JSON formatında yanıt ver:
{
  "score": 1-100 arası tam sayı,
  "recommendation": "Yüksek/Orta/Düşük",
  "reasoning": "Detaylı açıklama",
  "tags": ["tag1", "tag2", "tag3"],
  "marketTrend": "Pozitif/Nötr/Negatif",
  "competitionLevel": "Düşük/Orta/Yüksek",
  "profitPotential": "Yüksek/Orta/Düşük"
}`, productName, category)
}
