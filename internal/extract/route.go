// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/health-report/pkg/types"
)

// route is the set of targets shared by every item of one document.
type route struct {
	deliverables []string
	sections     map[string]string
}

// resolveRoute decides where a document's items go. A registry entry wins;
// without one each dimension of the document's chapter contributes its
// manager report; without a chapter everything goes to the comprehensive
// report. Registry failures are treated as a missing entry.
func (e *Engine) resolveRoute(ctx context.Context, src types.SourceFileType, log *zap.Logger) route {
	if rt, ok := e.registryRoute(ctx, src, log); ok {
		return rt
	}

	rt := route{sections: map[string]string{}}
	chapter, ok := e.tables.Chapter(src)
	if ok {
		seen := make(map[string]bool)
		for _, dim := range e.tables.Dimensions(chapter) {
			mgr, ok := e.tables.Manager(dim)
			if !ok || seen[mgr] {
				continue
			}
			seen[mgr] = true
			rt.deliverables = append(rt.deliverables, mgr)
		}
	}
	if len(rt.deliverables) == 0 {
		rt.deliverables = []string{types.DeliverableComprehensive}
		log.Debug("routing to comprehensive report", zap.Bool("chapter_resolved", ok))
		return rt
	}
	log.Debug("routing by chapter managers",
		zap.String("chapter", chapter),
		zap.Strings("deliverables", rt.deliverables))
	return rt
}

func (e *Engine) registryRoute(ctx context.Context, src types.SourceFileType, log *zap.Logger) (route, bool) {
	if e.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.lookupTimeout)
		defer cancel()
	}

	entry, err := e.registry.Entry(ctx, src)
	if err != nil {
		log.Warn("registry lookup failed, using fallback routing", zap.Error(err))
		return route{}, false
	}
	if entry == nil {
		return route{}, false
	}

	rt := route{sections: make(map[string]string)}
	for _, m := range entry.TargetMappings {
		if m.Deliverable == "" {
			continue
		}
		if _, seen := rt.sections[m.Deliverable]; seen {
			continue
		}
		rt.sections[m.Deliverable] = m.TargetSection
		rt.deliverables = append(rt.deliverables, m.Deliverable)
	}
	if len(rt.deliverables) == 0 {
		return route{}, false
	}
	return rt, true
}
