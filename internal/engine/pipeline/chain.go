package pipeline

import (
	"context"
	"fmt"

	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
)

// chain holds the transforms of one build. A nil stage is a no-op.
type chain struct {
	pre ports.Transformer
	min ports.Transformer
}

// newChain looks up the configured methods. Unknown methods are reported as
// configuration warnings and leave their stage empty.
func (p *Pipeline) newChain(b *build) chain {
	var c chain
	if m := b.ts.Preprocessor.Method; m != "" {
		t, err := p.transforms.Preprocessor(m)
		if err != nil {
			b.warn(p.logger, domain.Warning{
				Kind:    domain.WarningConfiguration,
				Method:  m,
				Message: fmt.Sprintf("unknown %s preprocessor %q, content is passed through", b.t, m),
			})
		} else {
			c.pre = t
		}
	}
	if m := b.ts.Minifier.Method; m != "" && b.s.Minify {
		t, err := p.transforms.Minifier(m)
		if err != nil {
			b.warn(p.logger, domain.Warning{
				Kind:    domain.WarningConfiguration,
				Method:  m,
				Message: fmt.Sprintf("unknown %s minifier %q, content is passed through", b.t, m),
			})
		} else {
			c.min = t
		}
	}
	return c
}

// apply runs t on content and collects its warnings into b.
func (b *build) apply(ctx context.Context, t ports.Transformer, content string) (string, error) {
	if t == nil {
		return content, nil
	}
	out, warnings, err := t.Transform(ctx, content)
	if err != nil {
		return "", err
	}
	b.warnings = append(b.warnings, warnings...)
	return out, nil
}
