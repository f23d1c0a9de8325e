package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/artie-labs/synapse-writer/lib/config/constants"
)

// DSN builds the go-mssqldb connection URL. The query timeout is applied per statement so the driver's own is disabled.
func (d DB) DSN() string {
	query := url.Values{}
	query.Add("database", d.Database)
	query.Add("dial timeout", strconv.Itoa(int(d.ConnectionTimeout().Seconds())))
	query.Add("connection timeout", "0")
	query.Add("encrypt", "true")
	query.Add("app name", constants.ApplicationName)

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		RawQuery: query.Encode(),
	}

	return u.String()
}
