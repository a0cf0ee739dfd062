package breach

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Checker reports whether a password appears in a known-breach corpus. It is
// injected into the strength service so evaluation can run without network
// access in tests.
type Checker interface {
	Check(ctx context.Context, password string) (bool, error)
}

// DefaultBaseURL is the public Have I Been Pwned range endpoint.
const DefaultBaseURL = "https://api.pwnedpasswords.com"

// HIBPClient queries the HIBP range API using k-anonymity: only the first five
// hex characters of the password's SHA-1 digest ever leave the process. The
// response lists suffix:count pairs for every breached hash under that prefix.
type HIBPClient struct {
	baseURL string
	client  *http.Client
}

// NewHIBPClient creates a client for the given base URL with a bounded request
// timeout. An empty baseURL selects the public endpoint.
func NewHIBPClient(baseURL string, timeout time.Duration) *HIBPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HIBPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Check looks the password up in the breach corpus. Any transport or protocol
// failure is returned as an error; callers treat that as status unknown rather
// than a hard failure.
func (c *HIBPClient) Check(ctx context.Context, password string) (bool, error) {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := digest[:5], digest[5:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/range/"+prefix, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("breach lookup: unexpected status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		candidate, _, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		if strings.EqualFold(candidate, suffix) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}

	return false, nil
}
