// Package restapi implements the typed API clients on top of the shared
// request pipeline in httpclient.
package restapi

import (
	"context"
	"strconv"

	"github.com/realestate/portal/internal/infrastructure/httpclient"
)

// Requester is the request pipeline the clients dispatch through.
// *httpclient.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, req httpclient.Request, out any) error
}

func idPath(prefix string, id int64, suffix string) string {
	return prefix + "/" + strconv.FormatInt(id, 10) + suffix
}
