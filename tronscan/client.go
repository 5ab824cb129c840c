package tronscan

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL is the public Tronscan API host.
	DefaultBaseURL = "https://apilist.tronscanapi.com"

	// USDTContract is the TRC20 contract for USDT on TRON.
	USDTContract = "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"

	// DefaultPageSize and DefaultMaxPages bound a single export fetch.
	DefaultPageSize = 50
	DefaultMaxPages = 100

	transferEndpoint = "/api/transfer/trc20"
	apiKeyHeader     = "TRON-PRO-API-KEY"
	apiKeyEnvVar     = "TRONSCAN_API_KEY"
	requestTimeout   = 15 * time.Second
	errBodyMaxLen    = 200
)

// Transfer is a raw TRC20 transfer record as returned by Tronscan. Amount is
// left as a json.Number because the API has served it both quoted and bare.
type Transfer struct {
	TransactionID  string      `json:"transaction_id"`
	From           string      `json:"from"`
	To             string      `json:"to"`
	Amount         json.Number `json:"amount"`
	Decimals       int32       `json:"decimals"`
	BlockTimestamp int64       `json:"block_timestamp"`
}

// The transfer list has moved between envelope keys across API versions.
type transferPage struct {
	TokenTransfers []Transfer `json:"token_transfers"`
	Data           []Transfer `json:"data"`
}

type Client struct {
	resty  *resty.Client
	apiKey string
}

// NewClient builds a Tronscan client. An empty apiKey is allowed; Tronscan
// rate limits unauthenticated callers.
func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		resty:  resty.New().SetBaseURL(baseURL).SetTimeout(requestTimeout),
		apiKey: apiKey,
	}
}

// APIKeyFromEnv returns the configured Tronscan API key, if any.
func APIKeyFromEnv() string {
	return os.Getenv(apiKeyEnvVar)
}

// FetchUSDTTransfers pages through the TRC20 transfer listing for an address,
// newest first, until a page comes back empty or maxPages is reached.
func (c *Client) FetchUSDTTransfers(address string, pageSize int, maxPages int) ([]Transfer, error) {
	var transfers []Transfer
	start := 0

	for page := 0; page < maxPages; page++ {
		req := c.resty.R().SetQueryParams(map[string]string{
			"address":    address,
			"trc20Id":    USDTContract,
			"start":      strconv.Itoa(start),
			"limit":      strconv.Itoa(pageSize),
			"direction":  "0",
			"reverse":    "true",
			"db_version": "1",
		})
		if c.apiKey != "" {
			req.SetHeader(apiKeyHeader, c.apiKey)
		}

		resp, err := req.Get(transferEndpoint)
		if err != nil {
			return nil, errors.Wrap(err, "tronscan request failed")
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, errors.Errorf("tronscan API HTTP %d: %s", resp.StatusCode(), truncate(resp.Body()))
		}

		body := resp.Body()
		if len(bytes.TrimSpace(body)) == 0 {
			// A 200 with an empty body means no more data.
			break
		}

		var payload transferPage
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, errors.Wrapf(err, "tronscan API returned non-JSON response: %s", truncate(body))
		}

		pageTransfers := payload.TokenTransfers
		if len(pageTransfers) == 0 {
			pageTransfers = payload.Data
		}
		if len(pageTransfers) == 0 {
			break
		}

		transfers = append(transfers, pageTransfers...)
		start += pageSize
	}

	return transfers, nil
}

func truncate(body []byte) string {
	if len(body) > errBodyMaxLen {
		body = body[:errBodyMaxLen]
	}
	return string(body)
}
