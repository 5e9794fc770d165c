package blueprint

import (
	"context"
	"net/http"
	"strings"

	"github.com/matzehuels/wallcheck/pkg/httputil"
)

// MaxFetchBytes caps the size of a downloaded exchange string.
const MaxFetchBytes = 16 << 20

// Fetch downloads an exchange string from url, retrying transient failures.
// A nil client uses http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, url string) (string, error) {
	var body []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		body, err = httputil.Get(ctx, client, url, MaxFetchBytes)
		return err
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}
