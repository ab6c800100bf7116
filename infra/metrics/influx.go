package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/evtolsim/core/logger"
	coremetrics "github.com/kilianp07/evtolsim/core/metrics"
	infralogger "github.com/kilianp07/evtolsim/infra/logger"
)

// InfluxSink writes simulation events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close shuts the underlying client down.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordFlightSegment writes the flight segment as a point.
func (s *InfluxSink) RecordFlightSegment(seg coremetrics.FlightSegment) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("flight_segment").
		AddTag("vehicle_id", strconv.Itoa(seg.VehicleID)).
		AddTag("company", seg.Company).
		AddField("hours", round3(seg.Hours)).
		AddField("distance_miles", round3(seg.DistanceMiles)).
		AddField("passenger_miles", round3(seg.PassengerMiles)).
		AddField("faults", seg.Faults).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordChargeSession writes the charge session as a point.
func (s *InfluxSink) RecordChargeSession(sess coremetrics.ChargeSession) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("charge_session").
		AddTag("vehicle_id", strconv.Itoa(sess.VehicleID)).
		AddTag("company", sess.Company).
		AddField("hours", round3(sess.Hours)).
		AddField("wait_seconds", round3(sess.Waited.Seconds())).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordStall writes the stall event as a point.
func (s *InfluxSink) RecordStall(vehicleID int, company, reason string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("stall").
		AddTag("vehicle_id", strconv.Itoa(vehicleID)).
		AddTag("company", company).
		AddTag("reason", reason).
		AddField("count", 1).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// SetFreeSlots writes the free-slot gauge as a point.
func (s *InfluxSink) SetFreeSlots(free int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("charger_pool").
		AddField("free_slots", free).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
