package voxel

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"terravox/engine/util"
)

// MeshSink receives a chunk's mesh buffers after every successful remesh.
// The buffers are owned by the chunk and valid until its next remesh.
type MeshSink func(coord Int3, mesh *Mesh)

type StoreOptions struct {
	CellSize Int3       // cells per chunk axis
	Scale    mgl32.Vec3 // world size of one cell per axis

	SpawnRadius           int32 // box radius around the observer, in chunks
	MaxGenerationsPerTick int
	MaxRemeshesPerTick    int

	Mode         MeshMode
	ParallelMesh bool
}

func (o *StoreOptions) normalize() {
	if o.CellSize == (Int3{}) {
		o.CellSize = Int3{16, 16, 16}
	}
	if o.Scale == (mgl32.Vec3{}) {
		o.Scale = mgl32.Vec3{1, 1, 1}
	}
	if o.SpawnRadius <= 0 {
		o.SpawnRadius = 2
	}
	if o.MaxGenerationsPerTick <= 0 {
		o.MaxGenerationsPerTick = 4
	}
	if o.MaxRemeshesPerTick <= 0 {
		o.MaxRemeshesPerTick = 8
	}
}

type pendingEdit struct {
	worldGrid Int3
	value     float32
	absolute  bool
}

// ChunkStore owns the resident chunk map and the two work queues, and
// schedules generation and remeshing under per-tick budgets. All of its
// methods must be called from a single scheduling goroutine; only the
// parallelism inside one chunk's fill or remesh fans out, and that joins
// before the scheduling call returns.
type ChunkStore struct {
	opts    StoreOptions
	sampler Sampler
	sink    MeshSink

	chunks    map[Int3]*Chunk
	genQueue  []Int3
	genQueued map[Int3]bool // membership set: a coordinate queues at most once

	updateQueue []*Chunk

	// edits aimed at coordinates that are not resident yet; replayed right
	// after the chunk generates so no edit is lost at streaming edges
	pendingEdits map[Int3][]pendingEdit

	lastObserver Int3
	hasObserver  bool
}

func NewChunkStore(opts StoreOptions, sampler Sampler, sink MeshSink) *ChunkStore {
	opts.normalize()
	return &ChunkStore{
		opts:         opts,
		sampler:      sampler,
		sink:         sink,
		chunks:       make(map[Int3]*Chunk),
		genQueued:    make(map[Int3]bool),
		pendingEdits: make(map[Int3][]pendingEdit),
	}
}

func (s *ChunkStore) GetChunk(coord Int3) *Chunk {
	return s.chunks[coord]
}

func (s *ChunkStore) ResidentCount() int {
	return len(s.chunks)
}

func (s *ChunkStore) PendingGenerations() int {
	return len(s.genQueue)
}

func (s *ChunkStore) PendingUpdates() int {
	return len(s.updateQueue)
}

// DirtyCount reports how many resident chunks still need a remesh.
func (s *ChunkStore) DirtyCount() int {
	dirty := 0
	for _, chunk := range s.chunks {
		if chunk.dirty {
			dirty++
		}
	}
	return dirty
}

// ResidentCoords returns the resident chunk coordinates in a stable order.
func (s *ChunkStore) ResidentCoords() []Int3 {
	coords := make([]Int3, 0, len(s.chunks))
	for coord := range s.chunks {
		coords = append(coords, coord)
	}
	sort.Slice(coords, func(i, j int) bool {
		return coords[i].Less(coords[j])
	})
	return coords
}

// Tick advances the store by one scheduling step: stream chunks in around
// the observer, pick up dirty chunks, then work both queues up to their
// per-tick budgets. Generation and remeshing have different costs, so each
// budget is enforced on its own; a burst of newly visible chunks cannot
// starve pending edits, and vice versa.
func (s *ChunkStore) Tick(observer mgl32.Vec3) {
	observerChunk := WorldToChunk(observer, s.opts.Scale, s.opts.CellSize)
	if !s.hasObserver || observerChunk != s.lastObserver {
		s.spawnAround(observerChunk)
		s.lastObserver = observerChunk
		s.hasObserver = true
	}
	s.enqueueDirty()
	s.drainGeneration()
	s.drainUpdates()
}

func (s *ChunkStore) spawnAround(center Int3) {
	r := s.opts.SpawnRadius
	requested := 0
	for z := -r; z <= r; z++ {
		for y := -r; y <= r; y++ {
			for x := -r; x <= r; x++ {
				if s.requestChunk(center.Add(Int3{x, y, z})) {
					requested++
				}
			}
		}
	}
	if requested > 0 {
		util.LogStreamInfo(fmt.Sprintf("[Store] Observer entered chunk %s, queued %d chunks for generation", center.ToString(), requested))
	}
}

// requestChunk queues a coordinate for generation unless it is already
// resident or already queued. Reports whether it was enqueued.
func (s *ChunkStore) requestChunk(coord Int3) bool {
	if _, resident := s.chunks[coord]; resident {
		return false
	}
	if s.genQueued[coord] {
		return false
	}
	s.genQueued[coord] = true
	s.genQueue = append(s.genQueue, coord)
	return true
}

// enqueueDirty scans the resident chunks and queues every dirty one that is
// not already waiting. A chunk dirtied again after its remesh simply gets
// queued again on a later tick.
func (s *ChunkStore) enqueueDirty() {
	for _, chunk := range s.chunks {
		if chunk.dirty && !chunk.updating {
			chunk.updating = true
			s.updateQueue = append(s.updateQueue, chunk)
		}
	}
}

func (s *ChunkStore) drainGeneration() {
	budget := s.opts.MaxGenerationsPerTick
	for budget > 0 && len(s.genQueue) > 0 {
		coord := s.genQueue[0]
		s.genQueue = s.genQueue[1:]
		budget--

		chunk := NewChunk(coord, s.opts.CellSize)
		if err := chunk.Generate(s.opts.Scale, s.sampler); err != nil {
			// keep the membership marker and retry on a later tick instead
			// of going resident with a partially filled field
			util.LogStreamError(fmt.Sprintf("[Store] Generation of chunk %s failed, requeued: %s", coord.ToString(), err.Error()))
			s.genQueue = append(s.genQueue, coord)
			continue
		}
		delete(s.genQueued, coord)
		s.chunks[coord] = chunk
		s.replayEdits(chunk)
		util.LogStreamDebug(fmt.Sprintf("[Store] Generated chunk %s", coord.ToString()))
	}
}

func (s *ChunkStore) drainUpdates() {
	budget := s.opts.MaxRemeshesPerTick
	for budget > 0 && len(s.updateQueue) > 0 {
		chunk := s.updateQueue[0]
		s.updateQueue = s.updateQueue[1:]
		budget--

		chunk.Remesh(s.opts.Scale, s.opts.Mode, s.opts.ParallelMesh)
		if s.sink != nil {
			s.sink(chunk.coord, &chunk.mesh)
		}
	}
}

func (s *ChunkStore) replayEdits(chunk *Chunk) {
	edits := s.pendingEdits[chunk.coord]
	if len(edits) == 0 {
		return
	}
	delete(s.pendingEdits, chunk.coord)
	for _, e := range edits {
		if e.absolute {
			chunk.SetVoxel(e.worldGrid, e.value)
		} else {
			chunk.AddVoxel(e.worldGrid, e.value)
		}
	}
	util.LogStreamDebug(fmt.Sprintf("[Store] Replayed %d pending edits on chunk %s", len(edits), chunk.coord.ToString()))
}

// SetVoxel writes an absolute density at a world-grid coordinate, applied
// to the owning chunk and every neighbor sharing the boundary sample.
func (s *ChunkStore) SetVoxel(worldGrid Int3, density float32) {
	s.applyEdit(worldGrid, density, true)
}

// AddVoxel adds a density delta at a world-grid coordinate, applied to the
// owning chunk and every neighbor sharing the boundary sample.
func (s *ChunkStore) AddVoxel(worldGrid Int3, delta float32) {
	s.applyEdit(worldGrid, delta, false)
}

func (s *ChunkStore) applyEdit(worldGrid Int3, value float32, absolute bool) {
	for _, coord := range s.editTargets(worldGrid) {
		chunk, resident := s.chunks[coord]
		if !resident {
			s.pendingEdits[coord] = append(s.pendingEdits[coord], pendingEdit{worldGrid, value, absolute})
			s.requestChunk(coord)
			continue
		}
		if absolute {
			chunk.SetVoxel(worldGrid, value)
		} else {
			chunk.AddVoxel(worldGrid, value)
		}
	}
}

// editTargets lists every chunk coordinate whose field stores the given
// world voxel. The owner always does; for each axis where the coordinate
// lies on a chunk boundary the negative-side neighbor holds a copy of the
// sample (its index cellSize row), giving 2^k chunks for k aligned axes.
// Both copies must end up with the same density or the shared face cracks.
func (s *ChunkStore) editTargets(worldGrid Int3) []Int3 {
	targets := make([]Int3, 1, 8)
	targets[0] = GridToChunk(worldGrid, s.opts.CellSize)
	if util.Mod(worldGrid.X, s.opts.CellSize.X) == 0 {
		for _, t := range targets {
			targets = append(targets, t.Add(Int3{-1, 0, 0}))
		}
	}
	if util.Mod(worldGrid.Y, s.opts.CellSize.Y) == 0 {
		for _, t := range targets {
			targets = append(targets, t.Add(Int3{0, -1, 0}))
		}
	}
	if util.Mod(worldGrid.Z, s.opts.CellSize.Z) == 0 {
		for _, t := range targets {
			targets = append(targets, t.Add(Int3{0, 0, -1}))
		}
	}
	return targets
}

// AddVoxelSphere adds a density delta to every voxel within radius (in
// grid units) of a world-space position.
func (s *ChunkStore) AddVoxelSphere(worldPos mgl32.Vec3, delta float32, radius float32) {
	s.forEachSphereVoxel(worldPos, radius, func(grid Int3) {
		s.AddVoxel(grid, delta)
	})
}

// SetVoxelSphere writes an absolute density to every voxel within radius
// (in grid units) of a world-space position.
func (s *ChunkStore) SetVoxelSphere(worldPos mgl32.Vec3, value float32, radius float32) {
	s.forEachSphereVoxel(worldPos, radius, func(grid Int3) {
		s.SetVoxel(grid, value)
	})
}

func (s *ChunkStore) forEachSphereVoxel(worldPos mgl32.Vec3, radius float32, apply func(grid Int3)) {
	center := WorldToGrid(worldPos, s.opts.Scale)
	r := int32(math.Ceil(float64(radius)))
	for dz := -r; dz <= r; dz++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if float32(dx*dx+dy*dy+dz*dz) <= radius*radius {
					apply(center.Add(Int3{dx, dy, dz}))
				}
			}
		}
	}
}
