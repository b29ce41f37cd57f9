package shared

import (
	"errors"
	"net/http"
	"sort"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/mutate"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/api"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

// FailUpstream translates a failed upstream call into the response
// envelope. Partial batch failures carry the failed ids as details so the
// caller can tell which rows survived.
func FailUpstream(w http.ResponseWriter, err error, requestID string) {
	var batch *mutate.BatchError
	if errors.As(err, &batch) {
		ids := make([]string, 0, len(batch.Failed))
		for id := range batch.Failed {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		api.FailWithDetails(w, http.StatusBadGateway, "bulk_partial_failure", batch.Error(), map[string]any{"failedIds": ids}, requestID)
		return
	}

	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		switch upErr.Kind {
		case upstream.KindApplication:
			api.Fail(w, http.StatusBadGateway, "upstream_rejected", upErr.Message, requestID)
		case upstream.KindShape:
			api.Fail(w, http.StatusBadGateway, "upstream_shape", upErr.Message, requestID)
		default:
			api.Fail(w, http.StatusBadGateway, "upstream_unreachable", upErr.Message, requestID)
		}
		return
	}

	api.Fail(w, http.StatusInternalServerError, "internal_error", "unexpected failure", requestID)
}
