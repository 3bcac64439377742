package config

import "runtime"

const (
	defaultDataDir   = "~/.local/share/winnow"
	defaultLogDir    = "~/.local/share/winnow/logs"
	defaultTrashDir  = "~/.local/share/winnow/trash"
	defaultAction    = "report-only"
	defaultExiftool  = "exiftool"
	defaultMagick    = "magick"
	defaultDcraw     = "dcraw"
	defaultFFmpeg    = "ffmpeg"
	defaultFFprobe   = "ffprobe"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults. Scan.Jobs of
// zero means "one worker per CPU", resolved by EffectiveJobs.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
			TrashDir: defaultTrashDir,
		},
		Scan: Scan{
			Jobs:   0,
			Action: defaultAction,
		},
		Tools: Tools{
			Exiftool: defaultExiftool,
			Magick:   defaultMagick,
			Dcraw:    defaultDcraw,
			FFmpeg:   defaultFFmpeg,
			FFprobe:  defaultFFprobe,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// EffectiveJobs resolves the configured concurrency, treating zero as NumCPU.
func (c *Config) EffectiveJobs() int {
	if c.Scan.Jobs > 0 {
		return c.Scan.Jobs
	}
	return runtime.NumCPU()
}
