package mdedit

// Engine owns the decoration state of one editor instance. It is not safe
// for concurrent use; hosts drive it from their event loop, one edit at a
// time, in delivery order.
type Engine struct {
	builder *Builder
	logger  Logger
	current RegionSet
}

// NewEngine returns an Engine that builds regions with builder.
func NewEngine(builder *Builder, logger Logger) *Engine {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Engine{builder: builder, logger: logger}
}

// Init computes the regions for a freshly loaded document.
func (e *Engine) Init(doc *Document, tree *Tree) RegionSet {
	e.current = e.build(doc, tree)
	return e.current
}

// Remap moves the current regions through change without re-traversing.
// Hosts that parse asynchronously can render this until Update runs.
func (e *Engine) Remap(change ChangeSet) RegionSet {
	e.current = e.current.Map(change)
	return e.current
}

// Update applies one edit. The previous regions are remapped through change
// first; the result is then replaced by a full rebuild from tree. A nil tree
// (the parse failed) keeps the remapped regions.
func (e *Engine) Update(change ChangeSet, doc *Document, tree *Tree) RegionSet {
	remapped := e.current.Map(change)
	if tree == nil {
		e.logger.Warn("no syntax tree for edit; keeping remapped regions", "regions", remapped.Len())
		e.current = remapped
		return e.current
	}
	e.current = e.build(doc, tree)
	return e.current
}

// Current returns the latest region set.
func (e *Engine) Current() RegionSet { return e.current }

func (e *Engine) build(doc *Document, tree *Tree) RegionSet {
	if tree == nil {
		return RegionSet{}
	}
	regions := e.builder.Build(tree, doc)
	e.logger.Debug("built regions", "regions", len(regions), "bytes", doc.Len())
	return NewRegionSet(regions)
}
