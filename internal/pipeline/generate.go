package pipeline

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/article"
	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
	"git.home.luguber.info/inful/apimd/internal/frontmatterops"
	"git.home.luguber.info/inful/apimd/internal/generator"
	"git.home.luguber.info/inful/apimd/internal/labels"
	"git.home.luguber.info/inful/apimd/internal/logfields"
	"git.home.luguber.info/inful/apimd/internal/metrics"
	"git.home.luguber.info/inful/apimd/internal/output"
	"git.home.luguber.info/inful/apimd/internal/render"
	"git.home.luguber.info/inful/apimd/internal/verify"
)

type renderedPage struct {
	anchorID string
	content  []byte
}

func newGenerator(model *apimodel.Model, opts Options, cat labels.Catalog, logger *slog.Logger, sourceURL func(string) string) *generator.Generator {
	return generator.New(model, generator.Options{
		ShowInheritedMembers: opts.ShowInheritedMembers,
		Labels:               cat,
		Logger:               logger,
		SourceURL:            sourceURL,
	})
}

// generate renders and writes every article, marking written anchors in
// keep.
func (p *Pipeline) generate(ctx context.Context, g *generator.Generator, r *render.Renderer, w *output.Writer, keep map[string]bool, report *Report) ([]renderedPage, error) {
	var pages []renderedPage
	for a, err := range g.Articles() {
		if err != nil {
			return pages, err
		}
		if cerr := ctx.Err(); cerr != nil {
			return pages, errors.WrapError(cerr, errors.CategoryInternal, "generation canceled").Build()
		}
		p.observe(a, report)

		content, fingerprint, err := p.page(r, a)
		if err != nil {
			p.recorder.IncRenderFailure()
			return pages, err
		}
		result, err := w.Write(ctx, a.AnchorID, content, fingerprint)
		if err != nil {
			return pages, err
		}
		switch result {
		case output.ResultWritten:
			report.Written++
			p.recorder.IncPageResult(metrics.PageWritten)
		case output.ResultUnchanged:
			report.Unchanged++
			p.recorder.IncPageResult(metrics.PageUnchanged)
		}

		keep[a.AnchorID] = true
		if p.opts.Verify {
			pages = append(pages, renderedPage{anchorID: a.AnchorID, content: content})
		}
	}
	return pages, nil
}

func (p *Pipeline) observe(a *article.Article, report *Report) {
	report.Articles++
	report.UnresolvedReferences += a.Meta.UnresolvedReferences
	p.recorder.IncArticleGenerated(string(a.Item.Kind))
	p.recorder.AddUnresolvedReferences(a.Meta.UnresolvedReferences)
	if a.Meta.MaybeIncomplete {
		report.MaybeIncomplete++
		p.recorder.IncIncompleteInheritance()
	}
}

// page renders a and stamps uid and fingerprint into its front matter.
// The fingerprint is empty when fingerprints are disabled.
func (p *Pipeline) page(r *render.Renderer, a *article.Article) ([]byte, string, error) {
	page, err := r.RenderArticle(a)
	if err != nil {
		return nil, "", err
	}

	fingerprint := ""
	if page.Fields != nil {
		if p.opts.UID {
			if _, _, err := frontmatterops.EnsureUID(page.Fields, a.AnchorID); err != nil {
				return nil, "", errors.WrapError(err, errors.CategoryInternal, "failed to set page uid").
					WithContext(errors.ContextAnchor, a.AnchorID).
					Build()
			}
		}
		if p.opts.Fingerprint {
			fingerprint, _, err = frontmatterops.UpsertFingerprint(page.Fields, page.Body)
			if err != nil {
				return nil, "", errors.WrapError(err, errors.CategoryInternal, "failed to fingerprint page").
					WithContext(errors.ContextAnchor, a.AnchorID).
					Build()
			}
		}
	}

	content, err := page.Bytes()
	if err != nil {
		return nil, "", errors.WrapError(err, errors.CategoryRender, "failed to serialize front matter").
			WithContext(errors.ContextAnchor, a.AnchorID).
			Build()
	}
	p.logger.Debug("Page ready", logfields.Anchor(a.AnchorID), logfields.Kind(string(a.Item.Kind)))
	return content, fingerprint, nil
}

func verifyPages(pages []renderedPage, ext string) *verify.Result {
	anchors := make([]string, 0, len(pages))
	for _, pg := range pages {
		anchors = append(anchors, pg.anchorID)
	}
	v := verify.New(anchors, ext)
	res := &verify.Result{Issues: []verify.Issue{}}
	for _, pg := range pages {
		res.PagesTotal++
		res.Issues = append(res.Issues, v.Page(pg.anchorID+"."+ext, pg.content)...)
	}
	return res
}
