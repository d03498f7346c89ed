package logger

import (
	"bytes"
	"testing"

	cfgpkg "github.com/shuldan/voyage/pkg/config"
	"github.com/shuldan/voyage/pkg/contracts"
)

func TestOptionsFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		section map[string]any
		log     func(l contracts.Logger)
		want    string
	}{
		{
			name:    "level filters",
			section: map[string]any{"level": "warn"},
			log: func(l contracts.Logger) {
				l.Info("hidden")
				l.Warn("shown")
			},
			want: "WARN shown\n",
		},
		{
			name:    "json format",
			section: map[string]any{"format": "json", "level": "info"},
			log: func(l contracts.Logger) {
				l.Info("ready")
			},
			want: `"msg":"ready"`,
		},
		{
			name:    "defaults",
			section: DefaultConfig(),
			log: func(l contracts.Logger) {
				l.Info("ready")
			},
			want: "INFO ready\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := OptionsFromConfig(cfgpkg.NewAccessor(tt.section, true))
			if err != nil {
				t.Fatal(err)
			}

			buf := &bytes.Buffer{}
			l, err := NewLogger(append(opts, WithWriter(buf))...)
			if err != nil {
				t.Fatal(err)
			}
			tt.log(l)

			if !bytes.Contains(buf.Bytes(), []byte(tt.want)) {
				t.Errorf("expected %q in %q", tt.want, buf.String())
			}
		})
	}
}
