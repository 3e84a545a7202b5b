package convert

// Stats is the per-file conversion record. Counters are diagnostics for
// operators and tests, they never drive control flow.
type Stats struct {
	FacesConverted      int
	FacesSkipped        int
	MeshBrushesRemoved  int
	ToolFacesRemapped   int
	CaulkFacesPreserved int
	ToolBrushesRemoved  int
	ToolBrushesKept     int
	PrefabsFound        int
	PrefabsExpanded     int
	BrushesAdded        int
	MissingPrefabFiles  int
	PlaceholderCount    int
}

// Add accumulates another file's counters into s, for batch summaries.
func (s *Stats) Add(o *Stats) {
	s.FacesConverted += o.FacesConverted
	s.FacesSkipped += o.FacesSkipped
	s.MeshBrushesRemoved += o.MeshBrushesRemoved
	s.ToolFacesRemapped += o.ToolFacesRemapped
	s.CaulkFacesPreserved += o.CaulkFacesPreserved
	s.ToolBrushesRemoved += o.ToolBrushesRemoved
	s.ToolBrushesKept += o.ToolBrushesKept
	s.PrefabsFound += o.PrefabsFound
	s.PrefabsExpanded += o.PrefabsExpanded
	s.BrushesAdded += o.BrushesAdded
	s.MissingPrefabFiles += o.MissingPrefabFiles
	s.PlaceholderCount += o.PlaceholderCount
}
