package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/assets/internal/engine/pipeline"
)

func TestRewriteCSSPaths(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "relative", in: "a{background:url(img/x.jpg)}", want: "a{background:url(../img/x.jpg)}"},
		{name: "parent directories", in: "url(../../img/x.jpg)", want: "url(../../../img/x.jpg)"},
		{name: "single quotes are dropped", in: "url('img/x.jpg')", want: "url(../img/x.jpg)"},
		{name: "double quotes are dropped", in: `url("img/x.jpg")`, want: "url(../img/x.jpg)"},
		{name: "absolute path", in: "url(/img/x.jpg)", want: "url(/img/x.jpg)"},
		{name: "quoted absolute path", in: "url('/img/x.jpg')", want: "url('/img/x.jpg')"},
		{name: "protocol url", in: "url(https://cdn.example.com/x.jpg)", want: "url(https://cdn.example.com/x.jpg)"},
		{name: "data uri", in: "url(data:image/png;base64,iVBORw0KGgo=)", want: "url(data:image/png;base64,iVBORw0KGgo=)"},
		{name: "case insensitive", in: "URL(img/x.jpg)", want: "url(../img/x.jpg)"},
		{
			name: "several references",
			in:   ".a{background:url(a.png)}\n.b{background:url(/b.png)}\n.c{background:url(c.png)}",
			want: ".a{background:url(../a.png)}\n.b{background:url(/b.png)}\n.c{background:url(../c.png)}",
		},
		{name: "no references", in: "a{color:red}", want: "a{color:red}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pipeline.RewriteCSSPaths(tt.in))
		})
	}
}
