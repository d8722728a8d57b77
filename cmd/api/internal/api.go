// Package internal holds the HTTP surface of the screener API. It owns no
// engine semantics: handlers marshal parameters in and picks out.
package internal

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/tickerhawk/tickerhawk/Internal/data"
	"github.com/tickerhawk/tickerhawk/Internal/screener"
	"github.com/tickerhawk/tickerhawk/Internal/types"
)

type API struct {
	Engine     *screener.Engine
	Provider   data.BarProvider
	Meta       data.MetaSource
	Universe   []string
	JWTManager *JWTManager
	Log        zerolog.Logger
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]interface{}{"success": false, "error": message})
}

func (a *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": "healthy"})
}

type tokenRequest struct {
	ClientID string `json:"client_id"`
	Secret   string `json:"secret"`
}

// HandleToken issues a JWT when the shared API secret matches.
func (a *API) HandleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	expected := os.Getenv("SCREENER_API_SECRET")
	if expected == "" || req.Secret != expected {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := a.JWTManager.GenerateToken(req.ClientID, 24)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]string{"token": token}})
}

// HandleScreen runs one screening pass with the posted parameters against the
// server's configured universe.
func (a *API) HandleScreen(w http.ResponseWriter, r *http.Request) {
	var params screener.ScreenerParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	fillParamDefaults(&params)
	if err := params.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	series, errs := data.LoadUniverse(r.Context(), a.Provider, a.Universe)
	for _, err := range errs {
		a.Log.Warn().Err(err).Msg("symbol fetch failed")
	}
	if len(series) == 0 && len(errs) > 0 {
		WriteError(w, http.StatusBadGateway, "data provider unavailable")
		return
	}

	metaMap := materializeMeta(a.Meta, a.Universe)

	out, err := a.Engine.Run(params, series, metaMap)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": out})
}

// fillParamDefaults backfills the period fields a minimal request body omits,
// so callers only send what they care about.
func fillParamDefaults(p *screener.ScreenerParams) {
	d := screener.DefaultParams(p.AsOfDate)
	if p.MaxResults == 0 {
		p.MaxResults = d.MaxResults
	}
	if p.RSIPeriod == 0 {
		p.RSIPeriod = d.RSIPeriod
	}
	if p.RSIMax == 0 && p.RSIMin == 0 {
		p.RSIMax = d.RSIMax
	}
	if p.StochPeriod == 0 {
		p.StochPeriod = d.StochPeriod
	}
	if p.StochMax == 0 && p.StochMin == 0 {
		p.StochMax = d.StochMax
	}
	if p.ADXPeriod == 0 {
		p.ADXPeriod = d.ADXPeriod
	}
	if p.ATRPeriod == 0 {
		p.ATRPeriod = d.ATRPeriod
	}
	if p.TrendLookback == 0 {
		p.TrendLookback = d.TrendLookback
	}
	if p.Leo.Enabled {
		if p.Leo.AllowedPatterns == nil {
			p.Leo.AllowedPatterns = d.Leo.AllowedPatterns
		}
		if p.Leo.OversoldStoch == 0 {
			p.Leo.OversoldStoch = d.Leo.OversoldStoch
		}
		if p.Leo.OverboughtStoch == 0 {
			p.Leo.OverboughtStoch = d.Leo.OverboughtStoch
		}
		if p.Leo.EarningsWarnDays == 0 {
			p.Leo.EarningsWarnDays = d.Leo.EarningsWarnDays
		}
		if p.Leo.Timeframe == "" {
			p.Leo.Timeframe = d.Leo.Timeframe
		}
	}
}

func materializeMeta(src data.MetaSource, symbols []string) map[string]types.TickerMeta {
	out := make(map[string]types.TickerMeta, len(symbols))
	for _, sym := range symbols {
		if m, ok := src.Meta(sym); ok {
			out[sym] = m
		}
	}
	return out
}
