// Package scene holds the snapshot of document state that a frame is built
// from: the set of pipelines, their display lists and auxiliary lists, the
// designated root pipeline and the current values of animated properties.
//
// A Scene is assembled by the API layer as display lists arrive and is
// treated as read-only by the frame builder.
//
// Example:
//
//	sc := scene.New()
//	sc.SetDisplayList(root, 1, list, aux, geom.Sz(800, 600), &white)
//	sc.SetRootPipeline(root)
package scene

import (
	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
)

// Pipeline records per-document metadata of the most recent display list.
type Pipeline struct {
	ID           displaylist.PipelineID
	Epoch        displaylist.Epoch
	ViewportSize geom.Size

	// BackgroundColor, if non-nil, is painted beneath all of the pipeline's
	// content.
	BackgroundColor *displaylist.ColorF
}

// Scene is the retained document state consumed by frame building.
//
// Scene is not safe for concurrent use; frame building assumes exclusive
// access for the duration of each call.
type Scene struct {
	// rootPipeline is valid only when hasRoot is set.
	rootPipeline displaylist.PipelineID
	hasRoot      bool

	// PipelineMap holds metadata for every known pipeline.
	PipelineMap map[displaylist.PipelineID]*Pipeline

	// DisplayLists holds the current display list of every pipeline.
	DisplayLists map[displaylist.PipelineID]displaylist.DisplayList

	// PipelineAuxiliaryLists holds the out-of-line payload of every
	// pipeline's display list.
	PipelineAuxiliaryLists displaylist.AuxiliaryListsMap

	// Properties holds animated property values.
	Properties *Properties
}

// New creates an empty scene without a root pipeline.
func New() *Scene {
	return &Scene{
		PipelineMap:            make(map[displaylist.PipelineID]*Pipeline),
		DisplayLists:           make(map[displaylist.PipelineID]displaylist.DisplayList),
		PipelineAuxiliaryLists: make(displaylist.AuxiliaryListsMap),
		Properties:             NewProperties(),
	}
}

// SetRootPipeline designates the pipeline that frames are built from.
func (s *Scene) SetRootPipeline(id displaylist.PipelineID) {
	s.rootPipeline = id
	s.hasRoot = true
}

// RootPipeline returns the root pipeline id and whether one is designated.
func (s *Scene) RootPipeline() (displaylist.PipelineID, bool) {
	return s.rootPipeline, s.hasRoot
}

// SetDisplayList installs a new display list for a pipeline, replacing any
// previous list, auxiliary lists and metadata.
func (s *Scene) SetDisplayList(
	id displaylist.PipelineID,
	epoch displaylist.Epoch,
	list displaylist.DisplayList,
	aux *displaylist.AuxiliaryLists,
	viewportSize geom.Size,
	background *displaylist.ColorF,
) {
	s.PipelineMap[id] = &Pipeline{
		ID:              id,
		Epoch:           epoch,
		ViewportSize:    viewportSize,
		BackgroundColor: background,
	}
	s.DisplayLists[id] = list
	if aux == nil {
		aux = &displaylist.AuxiliaryLists{}
	}
	s.PipelineAuxiliaryLists[id] = aux
}

// RemovePipeline forgets a pipeline. Removing the root pipeline clears the
// root designation.
func (s *Scene) RemovePipeline(id displaylist.PipelineID) {
	delete(s.PipelineMap, id)
	delete(s.DisplayLists, id)
	delete(s.PipelineAuxiliaryLists, id)
	if s.hasRoot && s.rootPipeline == id {
		s.hasRoot = false
		s.rootPipeline = displaylist.PipelineID{}
	}
}
