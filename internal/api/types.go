package api

import "github.com/nndjoli/eqty/internal/model"

// ScreenerQuery addresses one logical discovery page. The same
// offset+size always addresses the same page at a given point in time,
// which is what makes discovery restartable.
type ScreenerQuery struct {
	Region string // two-letter region code
	Offset int
	Size   int
}

// ScreenerPage is one page of discovery results.
type ScreenerPage struct {
	Total   int // total advertised by the endpoint, may drift across pages
	Tickers []model.TickerInfo
}

// screenerRequest is the wire shape of a screener POST body.
type screenerRequest struct {
	Size          int             `json:"size"`
	Offset        int             `json:"offset"`
	SortType      string          `json:"sortType"`
	SortField     string          `json:"sortField"`
	IncludeFields []string        `json:"includeFields"`
	TopOperator   string          `json:"topOperator"`
	Query         screenerOperand `json:"query"`
	QuoteType     string          `json:"quoteType"`
}

// screenerOperand is one node of the screener query tree. Operands are
// either nested operand nodes or literal values.
type screenerOperand struct {
	Operator string `json:"operator"`
	Operands []any  `json:"operands"`
}

// screenerEnvelope is the wire shape of a screener response.
type screenerEnvelope struct {
	Finance struct {
		Result []struct {
			Total   int              `json:"total"`
			Records []screenerRecord `json:"records"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"finance"`
}

type screenerRecord struct {
	Ticker   string `json:"ticker"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
	Region   string `json:"region"`
}

func (r screenerRecord) toModel() model.TickerInfo {
	return model.TickerInfo{
		Ticker:   r.Ticker,
		Sector:   r.Sector,
		Industry: r.Industry,
		Region:   r.Region,
	}
}

// quoteEnvelope is the wire shape of a batched quote response. Result
// entries are raw field maps keyed by wire field name.
type quoteEnvelope struct {
	QuoteResponse struct {
		Result []map[string]any `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}
