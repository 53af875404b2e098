package portfolio

// Exchanger converts currency-matched profit records into a single target
// currency, one rate lookup per leg.
type Exchanger struct {
	rates *Converter
}

// NewExchanger returns an Exchanger resolving rates through 'rates'.
func NewExchanger(rates *Converter) *Exchanger {
	return &Exchanger{rates: rates}
}

// Exchange normalizes one match into the target currency. Each leg is
// converted at the rate of its own date. Rate resolution failures
// propagate unchanged: one bad rate aborts the whole match.
func (x *Exchanger) Exchange(m Match, targetCurrency string) (MatchExchanged, error) {
	buyRate, err := x.rates.Rate(m.BuyAmount.Currency(), targetCurrency, m.BuyDate)
	if err != nil {
		return MatchExchanged{}, err
	}
	buyExchanged := m.BuyAmount.Convert(buyRate, targetCurrency)

	sellRate, err := x.rates.Rate(m.SellAmount.Currency(), targetCurrency, m.SellDate)
	if err != nil {
		return MatchExchanged{}, err
	}
	sellExchanged := m.SellAmount.Convert(sellRate, targetCurrency)

	return MatchExchanged{
		Match:               m,
		Currency:            targetCurrency,
		BuyRate:             buyRate,
		BuyAmountExchanged:  buyExchanged,
		SellRate:            sellRate,
		SellAmountExchanged: sellExchanged,
		ProfitExchanged:     sellExchanged.Sub(buyExchanged),
	}, nil
}
