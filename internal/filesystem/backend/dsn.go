package backend

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Params reads the query parameters of a backend DSN. Each parameter read
// through Params is consumed, so that Remaining only reports the parameters
// a backend did not use.
type Params struct {
	values url.Values
}

func NewParams(dsn *url.URL) *Params {
	return &Params{
		values: dsn.Query(),
	}
}

func (p *Params) Has(key string) bool {
	return p.values.Has(key)
}

func (p *Params) String(key string, defaultValue string) string {
	if !p.values.Has(key) {
		return defaultValue
	}

	value := p.values.Get(key)
	p.values.Del(key)

	return value
}

func (p *Params) Required(key string) (string, error) {
	if !p.values.Has(key) {
		return "", errors.Wrapf(ErrMissingParameter, "url parameter '%s' is required", key)
	}

	return p.String(key, ""), nil
}

// Bool returns true when the parameter is present without value or with a
// value parsable by strconv.ParseBool.
func (p *Params) Bool(key string, defaultValue bool) (bool, error) {
	if !p.values.Has(key) {
		return defaultValue, nil
	}

	raw := p.String(key, "")
	if raw == "" {
		return true, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidParameter, "could not parse url parameter '%s' value '%s' as boolean", key, raw)
	}

	return value, nil
}

func (p *Params) Duration(key string, defaultValue time.Duration) (time.Duration, error) {
	if !p.values.Has(key) {
		return defaultValue, nil
	}

	raw := p.String(key, "")

	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidParameter, "could not parse url parameter '%s' value '%s' as duration", key, raw)
	}

	return value, nil
}

// List splits a comma separated parameter, ignoring blank items.
func (p *Params) List(key string) []string {
	raw := p.String(key, "")
	if raw == "" {
		return nil
	}

	items := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		items = append(items, item)
	}

	return items
}

// Remaining returns the parameters not consumed yet.
func (p *Params) Remaining() url.Values {
	return p.values
}

// BasePath returns the DSN path without its leading separator.
func BasePath(dsn *url.URL) string {
	return strings.TrimPrefix(dsn.Path, "/")
}

// Credentials returns the user info of the DSN, if any.
func Credentials(dsn *url.URL) (username string, password string) {
	if dsn.User == nil {
		return "", ""
	}

	password, _ = dsn.User.Password()

	return dsn.User.Username(), password
}
