package news

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/singleflight"

	"fiji-news/internal/handler/http/respond"
	"fiji-news/internal/observability/logging"
	newsUC "fiji-news/internal/usecase/news"
)

const harvestKey = "harvest"

// HarvestHandler serves POST /harvest_news. Concurrent requests share one
// in-flight harvest and all receive its result.
type HarvestHandler struct {
	Svc   Service
	group singleflight.Group
}

func (h *HarvestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	// The harvest outlives any single caller so a disconnect does not abort
	// it for the others waiting on the same flight.
	ch := h.group.DoChan(harvestKey, func() (interface{}, error) {
		return h.Svc.Harvest(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		respond.Fail(w, r, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			respond.Fail(w, r, res.Err)
			return
		}
		result := res.Val.(*newsUC.HarvestResult)
		logger.Info("harvest served",
			"filename", result.Filename,
			"articles", result.Bundle.Total(),
			"shared", res.Shared)
		respond.JSON(w, http.StatusOK, harvestResponse{
			Status:   respond.StatusSuccess,
			Message:  fmt.Sprintf("Harvested %d articles", result.Bundle.Total()),
			Data:     result.Bundle,
			Filename: result.Filename,
		})
	}
}
