package main

import (
	"flag"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"terravox/engine/export"
	"terravox/engine/noise"
	"terravox/engine/util"
	"terravox/engine/voxel"
	"terravox/game"
)

func main() {
	configPath := flag.String("config", "terravox.yaml", "tuning file")
	outPath := flag.String("out", "terrain.gltf", "glTF output file")
	ticks := flag.Int("ticks", 120, "scheduling ticks to run")
	flag.Parse()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		util.LogIOError(err.Error())
		return
	}

	terrain := noise.NewTerrain(cfg.NoiseSeed, cfg.NoiseFrequency)

	remeshes := 0
	totalTriangles := 0
	sink := func(coord voxel.Int3, mesh *voxel.Mesh) {
		remeshes++
		totalTriangles += mesh.TriangleCount()
	}
	store := voxel.NewChunkStore(cfg.StoreOptions(), terrain.Sample, sink)

	// walk the observer along +X so the streaming path gets exercised
	for i := 0; i < *ticks; i++ {
		observer := mgl32.Vec3{float32(i) * 0.5, 0, 0}
		store.Tick(observer)
	}

	// one demo edit: carve a sphere near the origin, then let the store
	// drain the resulting remeshes
	store.AddVoxelSphere(mgl32.Vec3{4, 0, 4}, -8, 3)
	for store.PendingGenerations() > 0 || store.PendingUpdates() > 0 || store.DirtyCount() > 0 {
		store.Tick(mgl32.Vec3{float32(*ticks) * 0.5, 0, 0})
	}

	util.LogSystemInfo(fmt.Sprintf("[Main] %d chunks resident, %d remeshes, %d triangles total",
		store.ResidentCount(), remeshes, totalTriangles))

	doc := export.NewGLTF()
	for _, coord := range store.ResidentCoords() {
		doc.AddMesh(coord, store.GetChunk(coord).Mesh())
	}
	if err := doc.Save(*outPath); err != nil {
		util.LogIOError(err.Error())
	}
}
