package googlechat

import (
	"fmt"
	"net/http"
	"time"

	cfotel "github.com/Strob0t/gchat-notify/internal/adapter/otel"
	"github.com/Strob0t/gchat-notify/internal/port/notifier"
)

func init() {
	notifier.Register(providerName, func(config map[string]string) (notifier.Notifier, error) {
		timeout := DefaultTimeout
		if v := config["timeout"]; v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("googlechat timeout %q: %w", v, err)
			}
			if d <= 0 {
				return nil, fmt.Errorf("googlechat timeout %q: must be > 0", v)
			}
			timeout = d
		}
		client := &http.Client{Transport: cfotel.Transport(http.DefaultTransport)}
		return NewDispatcher(WithHTTPClient(client), WithTimeout(timeout)), nil
	})
}
