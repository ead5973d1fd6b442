package transport

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// WatchHealth mirrors the coordinator's listening flag into hs for service
// until ctx is done, then marks every service as not serving.
func WatchHealth(ctx context.Context, hs *health.Server, source StatusSource, service string, interval time.Duration) {
	update := func() {
		status := healthpb.HealthCheckResponse_NOT_SERVING
		if source.Snapshot().Listening {
			status = healthpb.HealthCheckResponse_SERVING
		}
		hs.SetServingStatus(service, status)
		hs.SetServingStatus("", status)
	}

	update()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
			update()
		}
	}
}
