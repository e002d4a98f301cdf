package report

import (
	"fmt"
	"strings"

	"github.com/sig-0/usdreport/storage/types"
)

// directionLabels maps the analyzer direction to the Arabic label used
// inside the editorial prompt
var directionLabels = map[types.Direction]string{
	types.DirectionUp:     "ارتفاع",
	types.DirectionDown:   "انخفاض",
	types.DirectionStable: "استقرار",
}

// BuildPrompt renders the payload into the structured prompt text
// handed to the article generator. The generator itself is a black
// box; everything it needs to know about the day's numbers is in here
func BuildPrompt(p *Payload) string {
	source := p.Source.String()
	if p.Source == types.SourceUnknown {
		source = "مصدر رسمي"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "اكتب تقريرًا اقتصاديًا احترافيًا عن سعر الدولار اليوم في %s.\n\n", p.Country)
	fmt.Fprintf(&b, "التاريخ: %s\n\n", p.Date)
	b.WriteString("البيانات الدقيقة (اعتمد عليها حرفيًا داخل النص):\n")
	fmt.Fprintf(&b, "- السعر الرسمي للشراء: %v %s\n", p.Buy, p.Currency)
	fmt.Fprintf(&b, "- السعر الرسمي للبيع: %v %s\n", p.Sell, p.Currency)
	fmt.Fprintf(&b, "- نسبة التغير مقارنة بالأمس: %v%%\n", p.Change.ChangePercent)
	fmt.Fprintf(&b, "- الاتجاه العام: %s\n", directionLabels[p.Change.Direction])
	fmt.Fprintf(&b, "- المصدر المعتمد للأسعار: %s\n\n", source)
	b.WriteString("التعليمات التحريرية:\n")
	b.WriteString("1) ابدأ الفقرة الأولى بذكر السعر الرسمي مباشرة مع الإشارة إلى المصدر.\n")
	b.WriteString("2) قارن بالأمس واذكر سببًا منطقيًا للحركة.\n")
	b.WriteString("3) تناول السوق الموازية بحذر مهني دون أرقام غير مؤكدة.\n")
	b.WriteString("4) اربط موجزًا بين حركة الدولار والسياسة النقدية.\n")
	b.WriteString("5) اختم بسطرين حول ما سيراقبه المتعاملون خلال 48 ساعة.\n")

	return b.String()
}

// prompt renders the payload prompt, appending the article length
// instruction when bounds are configured
func (r *Reporter) prompt(p *Payload) string {
	prompt := BuildPrompt(p)

	if r.minWords > 0 && r.maxWords > 0 {
		prompt += fmt.Sprintf("6) اجعل طول المقال بين %d و%d كلمة.\n", r.minWords, r.maxWords)
	}

	return prompt
}
