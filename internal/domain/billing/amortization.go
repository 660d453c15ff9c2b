package billing

import "github.com/shopspring/decimal"

// Amortize reparte una deuda total en count cuotas iguales redondeadas a 2
// decimales (servicio de dominio). El residuo del redondeo se reconcilia en
// la última cuota, de modo que la suma de las cuotas sea exactamente total.
func Amortize(total decimal.Decimal, count int) []decimal.Decimal {
	if count <= 0 || total.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	base := total.Div(decimal.NewFromInt(int64(count))).Round(2)
	amounts := make([]decimal.Decimal, count)
	acc := decimal.Zero
	for i := 0; i < count-1; i++ {
		amounts[i] = base
		acc = acc.Add(base)
	}
	amounts[count-1] = total.Sub(acc).Round(2)
	return amounts
}
