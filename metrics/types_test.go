package metrics

import (
	"reflect"
	"testing"
)

func TestL(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"simple", "worker", "7"},
		{"empty value", "datacenter", ""},
		{"empty key", "", "31"},
		{"dotted key", "id.encoding", "base58"},
		{"value with slash", "route", "/api/v1/ids/{id}"},
		{"value with spaces", "status", "404 Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label := L(tt.key, tt.value)
			if label.Key != tt.key || label.Value != tt.value {
				t.Errorf("L(%q, %q) = {%q, %q}", tt.key, tt.value, label.Key, label.Value)
			}
		})
	}
}

func TestWithUnit(t *testing.T) {
	var opts MetricOptions
	WithUnit("s")(&opts)

	if opts.Unit != "s" {
		t.Errorf("Unit = %q, want %q", opts.Unit, "s")
	}
	if opts.Buckets != nil {
		t.Errorf("Buckets = %v, want nil", opts.Buckets)
	}
}

func TestWithBuckets(t *testing.T) {
	buckets := []float64{0.00001, 0.0001, 0.001, 0.01, 0.1}

	var opts MetricOptions
	WithBuckets(buckets)(&opts)

	if !reflect.DeepEqual(opts.Buckets, buckets) {
		t.Errorf("Buckets = %v, want %v", opts.Buckets, buckets)
	}
	if opts.Unit != "" {
		t.Errorf("Unit = %q, want empty", opts.Unit)
	}
}

func TestMetricOptionChaining(t *testing.T) {
	// 多个选项依次应用到同一个 MetricOptions
	opts := MetricOptions{}
	for _, apply := range []MetricOption{
		WithUnit("By"),
		WithBuckets([]float64{64, 128, 256}),
	} {
		apply(&opts)
	}

	if opts.Unit != "By" {
		t.Errorf("Unit = %q, want %q", opts.Unit, "By")
	}
	if len(opts.Buckets) != 3 || opts.Buckets[0] != 64 {
		t.Errorf("Buckets = %v, want [64 128 256]", opts.Buckets)
	}

	// 后写的选项覆盖先写的
	WithUnit("s")(&opts)
	if opts.Unit != "s" {
		t.Errorf("Unit after override = %q, want %q", opts.Unit, "s")
	}
}
