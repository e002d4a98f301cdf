package server

import "github.com/sig-0/usdreport/storage/types"

type CountriesResponse struct {
	Results []types.Country `json:"results"`
}

type RatesResponse struct {
	Results []types.HistoryRow `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
