package gh

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/go-github/v68/github"
)

// Humanize strips transport noise off REST client errors so they read as the
// remote failure itself ("Not Found", "Validation Failed") rather than a
// method, URL, and status code.
func Humanize(err error) error {
	if err == nil {
		return nil
	}
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return fmt.Errorf("rate limit exceeded, resets at %s",
			rle.Rate.Reset.Time.Format(time.RFC3339))
	}
	var are *github.AbuseRateLimitError
	if errors.As(err, &are) {
		return errors.New("secondary rate limit hit, retry later")
	}
	var re *github.ErrorResponse
	if errors.As(err, &re) && re.Message != "" {
		return errors.New(re.Message)
	}
	return err
}
