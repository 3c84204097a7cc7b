package sqlite

import (
	"fmt"
	"net/url"
	"time"

	. "github.com/go-ozzo/ozzo-validation"
)

type Config struct {
	Path        string        `json:"path"`
	BusyTimeout time.Duration `json:"busy_timeout"`
}

// DSN returns the modernc file URI with WAL journaling and a busy timeout.
// The path is escaped so '?' or '#' in it cannot leak into the query.
func (c *Config) DSN() string {
	query := url.Values{}
	query.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", c.BusyTimeout.Milliseconds()))
	query.Add("_pragma", "journal_mode(WAL)")

	u := url.URL{
		Scheme:   "file",
		Path:     c.Path,
		OmitHost: true,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func (c *Config) Validate() error {
	return ValidateStruct(c,
		Field(&c.Path, Required, Length(1, 4096)),
		Field(&c.BusyTimeout, Min(time.Duration(0)), Max(time.Minute)),
	)
}
