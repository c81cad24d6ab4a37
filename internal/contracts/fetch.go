package contracts

import (
	"bytes"
	"fmt"
	"net/http"
	"os"

	"github.com/goccy/go-json"

	"github.com/travelnurselog/contractmap/internal/metrics"
)

// Envelope is the logbook export wrapper some backends emit instead of a
// bare row array.
type Envelope struct {
	Contracts []Contract `json:"contracts"`
	Count     int        `json:"count,omitempty"`
}

// FetchRows downloads contracts from an endpoint returning a bare JSON
// array of rows, the PostgREST convention. Static auth headers such as
// apikey or Authorization are passed through verbatim.
func FetchRows(client *http.Client, url string, headers map[string]string) ([]Contract, error) {
	resp, err := get(client, url, headers)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("rows").Inc()
		return nil, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	var rows []Contract
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		metrics.FetchErrors.WithLabelValues("rows").Inc()
		return nil, err
	}

	return counted("rows", rows), nil
}

// FetchExport downloads contracts from an endpoint returning the logbook
// export envelope.
func FetchExport(client *http.Client, url string, headers map[string]string) ([]Contract, error) {
	resp, err := get(client, url, headers)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("export").Inc()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		metrics.FetchErrors.WithLabelValues("export").Inc()
		return nil, err
	}

	return counted("export", env.Contracts), nil
}

// LoadFile reads contracts from a local JSON file holding either a bare
// row array or the export envelope.
func LoadFile(path string) ([]Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("file").Inc()
		return nil, err
	}

	rows, err := Decode(data)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("file").Inc()
		return nil, err
	}

	return counted("file", rows), nil
}

// Decode parses a contract document in either supported shape.
func Decode(data []byte) ([]Contract, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []Contract
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	return env.Contracts, nil
}

// get issues the request with the given static headers and rejects
// non-200 responses.
func get(client *http.Client, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return resp, nil
}

// counted records the fetch metrics for one source, including rows that
// arrived without usable coordinates and will never place on the map.
func counted(source string, rows []Contract) []Contract {
	metrics.ContractsFetched.WithLabelValues(source).Add(float64(len(rows)))

	dropped := 0
	for _, c := range rows {
		if !c.HasCoordinates() {
			dropped++
		}
	}
	if dropped > 0 {
		metrics.ContractsDropped.WithLabelValues(source).Add(float64(dropped))
	}

	return rows
}
