// journal/form.go
package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TradeForm is a raw trade submission, string-typed as it arrives from
// CLI flags or a JSON body. Prices are decimal strings like "150.50".
type TradeForm struct {
	Ticker     string `json:"ticker"`
	EntryPrice string `json:"entry_price"`
	InitialSL  string `json:"initial_sl"`
	CurrentSL  string `json:"current_sl"`
	Status     string `json:"status"`
}

// FieldErrors maps field name to the reason validation failed.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Trade validates the form as a new-trade submission and returns the
// record to store. The store assigns id and timestamps. On failure the
// error is a FieldErrors and no record is produced.
func (f TradeForm) Trade() (Trade, error) {
	fe := FieldErrors{}

	ticker := strings.ToUpper(strings.TrimSpace(f.Ticker))
	if ticker == "" {
		fe["ticker"] = "required"
	}

	entry := requireDecimal(fe, "entry_price", f.EntryPrice)
	if _, bad := fe["entry_price"]; !bad && !entry.IsPositive() {
		fe["entry_price"] = "must be positive"
	}

	initialSL := requireDecimal(fe, "initial_sl", f.InitialSL)

	// Current stop defaults to the initial stop on a fresh trade.
	currentSL := initialSL
	if strings.TrimSpace(f.CurrentSL) != "" {
		currentSL = requireDecimal(fe, "current_sl", f.CurrentSL)
	}

	status := StatusOpen
	if strings.TrimSpace(f.Status) != "" {
		s, err := ParseStatus(strings.TrimSpace(f.Status))
		if err != nil {
			fe["status"] = "must be open or closed"
		} else {
			status = s
		}
	}

	if len(fe) > 0 {
		return Trade{}, fe
	}

	return Trade{
		Ticker:     ticker,
		EntryPrice: entry,
		InitialSL:  initialSL,
		CurrentSL:  currentSL,
		Status:     status,
	}, nil
}

// Update validates the form as an edit and returns the partial update.
// Empty fields mean "leave unchanged"; a form with no fields set is a
// valid no-op apart from the UpdatedAt refresh.
func (f TradeForm) Update() (Update, error) {
	fe := FieldErrors{}
	var upd Update

	if f.Ticker != "" {
		ticker := strings.ToUpper(strings.TrimSpace(f.Ticker))
		if ticker == "" {
			fe["ticker"] = "must not be blank"
		} else {
			upd.Ticker = &ticker
		}
	}
	if strings.TrimSpace(f.EntryPrice) != "" {
		entry := requireDecimal(fe, "entry_price", f.EntryPrice)
		if _, bad := fe["entry_price"]; !bad && !entry.IsPositive() {
			fe["entry_price"] = "must be positive"
		} else if !bad {
			upd.EntryPrice = &entry
		}
	}
	if strings.TrimSpace(f.InitialSL) != "" {
		sl := requireDecimal(fe, "initial_sl", f.InitialSL)
		if _, bad := fe["initial_sl"]; !bad {
			upd.InitialSL = &sl
		}
	}
	if strings.TrimSpace(f.CurrentSL) != "" {
		sl := requireDecimal(fe, "current_sl", f.CurrentSL)
		if _, bad := fe["current_sl"]; !bad {
			upd.CurrentSL = &sl
		}
	}
	if strings.TrimSpace(f.Status) != "" {
		s, err := ParseStatus(strings.TrimSpace(f.Status))
		if err != nil {
			fe["status"] = "must be open or closed"
		} else {
			upd.Status = &s
		}
	}

	if len(fe) > 0 {
		return Update{}, fe
	}
	return upd, nil
}

func requireDecimal(fe FieldErrors, field, raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		fe[field] = "required"
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		fe[field] = "not a number"
		return decimal.Zero
	}
	return d
}
