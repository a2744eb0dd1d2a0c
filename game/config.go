package game

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"terravox/engine/voxel"
)

// Config is the tuning surface of the terrain system, loaded from YAML.
// Zero values fall back to the defaults in normalize.
type Config struct {
	CellSize   []int32   `yaml:"cell_size"`   // cells per chunk axis, 3 values
	ChunkScale []float32 `yaml:"chunk_scale"` // world size of one cell per axis, 3 values

	NoiseSeed      int64   `yaml:"noise_seed"`
	NoiseFrequency float64 `yaml:"noise_frequency"`

	SpawnRadius           int32 `yaml:"spawn_radius"` // in chunks
	MaxGenerationsPerTick int   `yaml:"max_generations_per_tick"`
	MaxRemeshesPerTick    int   `yaml:"max_remeshes_per_tick"`

	IndexedMeshes   bool `yaml:"indexed_meshes"`
	ParallelMeshing bool `yaml:"parallel_meshing"`
}

func DefaultConfig() Config {
	cfg := Config{}
	cfg.normalize()
	return cfg
}

// LoadConfig reads a YAML tuning file. A missing path is not an error; the
// defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.normalize()
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if len(c.CellSize) != 3 {
		c.CellSize = []int32{16, 16, 16}
	}
	if len(c.ChunkScale) != 3 {
		c.ChunkScale = []float32{1, 1, 1}
	}
	if c.NoiseFrequency <= 0 {
		c.NoiseFrequency = 0.05
	}
	if c.SpawnRadius <= 0 {
		c.SpawnRadius = 2
	}
	if c.MaxGenerationsPerTick <= 0 {
		c.MaxGenerationsPerTick = 4
	}
	if c.MaxRemeshesPerTick <= 0 {
		c.MaxRemeshesPerTick = 8
	}
}

// StoreOptions maps the config onto the chunk store's option struct.
func (c Config) StoreOptions() voxel.StoreOptions {
	mode := voxel.Flat
	if c.IndexedMeshes {
		mode = voxel.Indexed
	}
	return voxel.StoreOptions{
		CellSize:              voxel.Int3{X: c.CellSize[0], Y: c.CellSize[1], Z: c.CellSize[2]},
		Scale:                 mgl32.Vec3{c.ChunkScale[0], c.ChunkScale[1], c.ChunkScale[2]},
		SpawnRadius:           c.SpawnRadius,
		MaxGenerationsPerTick: c.MaxGenerationsPerTick,
		MaxRemeshesPerTick:    c.MaxRemeshesPerTick,
		Mode:                  mode,
		ParallelMesh:          c.ParallelMeshing,
	}
}
