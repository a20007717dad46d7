package model

// Field describes one column of the quote schema: the wire name used by
// the quote endpoint and the display name used for CSV headers.
type Field struct {
	Name    string
	Display string
}

// Fields is the full quote schema, in output column order. Every
// QuoteRecord carries exactly these fields; a symbol the endpoint knows
// nothing about still produces a record with explicit nils.
var Fields = []Field{
	{"language", "Language"},
	{"region", "Region"},
	{"sector", "Sector"},
	{"industry", "Industry"},
	{"quoteType", "Quote Type"},
	{"typeDisp", "Display Type"},
	{"quoteSourceName", "Quote Source Name"},
	{"triggerable", "Triggerable"},
	{"customPriceAlertConfidence", "Custom Price Alert Confidence"},
	{"currency", "Currency"},
	{"shortName", "Short Name"},
	{"longName", "Long Name"},
	{"displayName", "Display Name"},
	{"corporateActions", "Corporate Actions"},
	{"regularMarketTime", "Regular Market Time"},
	{"marketState", "Market State"},
	{"exchange", "Exchange"},
	{"fullExchangeName", "Full Exchange Name"},
	{"messageBoardId", "Message Board ID"},
	{"exchangeTimezoneName", "Exchange Timezone Name"},
	{"exchangeTimezoneShortName", "Exchange Timezone Short Name"},
	{"gmtOffSetMilliseconds", "GMT Offset Milliseconds"},
	{"market", "Market"},
	{"esgPopulated", "ESG Populated"},
	{"hasPrePostMarketData", "Has Pre Post Market Data"},
	{"firstTradeDateMilliseconds", "First Trade Date Milliseconds"},
	{"priceHint", "Price Hint"},
	{"regularMarketChange", "Regular Market Change"},
	{"regularMarketChangePercent", "Regular Market Change Percent"},
	{"regularMarketPrice", "Regular Market Price"},
	{"regularMarketDayHigh", "Regular Market Day High"},
	{"regularMarketDayRange", "Regular Market Day Range"},
	{"regularMarketDayLow", "Regular Market Day Low"},
	{"regularMarketVolume", "Regular Market Volume"},
	{"regularMarketPreviousClose", "Regular Market Previous Close"},
	{"regularMarketOpen", "Regular Market Open"},
	{"bid", "Bid"},
	{"ask", "Ask"},
	{"bidSize", "Bid Size"},
	{"askSize", "Ask Size"},
	{"financialCurrency", "Financial Currency"},
	{"averageDailyVolume3Month", "Average Daily Volume 3 Month"},
	{"averageDailyVolume10Day", "Average Daily Volume 10 Day"},
	{"fiftyTwoWeekLowChange", "Fifty Two Week Low Change"},
	{"fiftyTwoWeekLowChangePercent", "Fifty Two Week Low Change Percent"},
	{"fiftyTwoWeekRange", "Fifty Two Week Range"},
	{"fiftyTwoWeekHighChange", "Fifty Two Week High Change"},
	{"fiftyTwoWeekHighChangePercent", "Fifty Two Week High Change Percent"},
	{"fiftyTwoWeekLow", "Fifty Two Week Low"},
	{"fiftyTwoWeekHigh", "Fifty Two Week High"},
	{"fiftyTwoWeekChangePercent", "Fifty Two Week Change Percent"},
	{"earningsTimestamp", "Earnings Timestamp"},
	{"earningsTimestampStart", "Earnings Timestamp Start"},
	{"earningsTimestampEnd", "Earnings Timestamp End"},
	{"earningsCallTimestampStart", "Earnings Call Timestamp Start"},
	{"earningsCallTimestampEnd", "Earnings Call Timestamp End"},
	{"isEarningsDateEstimate", "Is Earnings Date Estimate"},
	{"trailingAnnualDividendRate", "Trailing Annual Dividend Rate"},
	{"trailingAnnualDividendYield", "Trailing Annual Dividend Yield"},
	{"trailingPE", "Trailing PE"},
	{"forwardPE", "Forward PE"},
	{"dividendRate", "Dividend Rate"},
	{"dividendYield", "Dividend Yield"},
	{"dividendDate", "Dividend Date"},
	{"epsTrailingTwelveMonths", "EPS Trailing Twelve Months"},
	{"epsForward", "EPS Forward"},
	{"epsCurrentYear", "EPS Current Year"},
	{"priceEpsCurrentYear", "Price EPS Current Year"},
	{"sharesOutstanding", "Shares Outstanding"},
	{"bookValue", "Book Value"},
	{"marketCap", "Market Capitalization"},
	{"priceToBook", "Price To Book"},
	{"fiftyDayAverage", "Fifty Day Average"},
	{"fiftyDayAverageChange", "Fifty Day Average Change"},
	{"fiftyDayAverageChangePercent", "Fifty Day Average Change Percent"},
	{"twoHundredDayAverage", "Two Hundred Day Average"},
	{"twoHundredDayAverageChange", "Two Hundred Day Average Change"},
	{"twoHundredDayAverageChangePercent", "Two Hundred Day Average Change Percent"},
	{"sourceInterval", "Source Interval"},
	{"exchangeDataDelayedBy", "Exchange Data Delayed By"},
	{"averageAnalystRating", "Average Analyst Rating"},
	{"tradeable", "Tradeable"},
	{"cryptoTradeable", "Crypto Tradeable"},
}

var displayByName = func() map[string]string {
	m := make(map[string]string, len(Fields))
	for _, f := range Fields {
		m[f.Name] = f.Display
	}
	return m
}()

// FieldNames returns the wire names of the quote schema in column order.
func FieldNames() []string {
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = f.Name
	}
	return names
}

// DisplayName returns the display name for a wire field name.
// Unknown names are returned unchanged.
func DisplayName(name string) string {
	if d, ok := displayByName[name]; ok {
		return d
	}
	return name
}
