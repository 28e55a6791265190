package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"splatviewer/internal/config"
	"splatviewer/internal/math3"
	"splatviewer/internal/render"
	"splatviewer/internal/splat"
	"splatviewer/internal/utils"
)

const (
	windowWidth  = 720
	windowHeight = 720
)

func main() {
	configPath := flag.String("configuration-file-path", "",
		"Path to the configuration file. Defaults to "+config.DefaultPath)
	inputPath := flag.String("input-file-path", "",
		"Path to the binary splat scene file (.lz4 suffix enables decompression)")
	demo := flag.Bool("demo", false,
		"Render a small built-in demo scene instead of loading a file")
	cameraPosition := flag.String("camera-position", "",
		"Initial camera position (world space). Format: \"x,y,z\". Defaults to (3,3,3)")
	cameraLookTarget := flag.String("camera-look-target", "",
		"Initial camera look target (world space). Format: \"x,y,z\". Defaults to the average splat position")
	initialUpVector := flag.String("initial-up-vector", "",
		"Initial up vector for the camera. Format: \"x,y,z\". Defaults to (0,1,0)")
	screenshotMode := flag.Bool("screenshot", false,
		"Headless mode: render a single frame, save it as a PNG and exit")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	flag.Parse()

	utils.DebugMode = *debugFlag

	cfg, err := loadConfiguration(*configPath)
	if err != nil {
		utils.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	utils.ConsoleLevel = cfg.Logging.ConsoleLevel()
	if *debugFlag {
		utils.ConsoleLevel = utils.LevelDebug
	}
	if err := utils.OpenLogFile(cfg.Logging.LogFileOutputDirectory, "splatviewer.log", cfg.Logging.FileLevel()); err != nil {
		utils.Warn("Log file output disabled: %v", err)
	}
	defer utils.CloseLogFile()

	if err := os.MkdirAll(cfg.Screenshot.ScreenshotDirectoryPath, 0755); err != nil {
		utils.Error("Failed to create screenshot directory %s: %v", cfg.Screenshot.ScreenshotDirectoryPath, err)
		os.Exit(1)
	}

	scene, err := loadScene(*inputPath, *demo, cfg)
	if err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
	utils.Info("Scene loaded: %d splats", scene.Len())

	opts := render.Options{
		Width:                  windowWidth,
		Height:                 windowHeight,
		ScalingFactor:          cfg.Render.SplatScalingFactor,
		ConventionalProjection: cfg.Render.ConventionalProjection,
	}
	if opts.CameraPosition, err = parseOptionalTriple(*cameraPosition); err != nil {
		utils.Error("Invalid -camera-position: %v", err)
		os.Exit(1)
	}
	if opts.CameraTarget, err = parseOptionalTriple(*cameraLookTarget); err != nil {
		utils.Error("Invalid -camera-look-target: %v", err)
		os.Exit(1)
	}
	if opts.UpVector, err = parseOptionalTriple(*initialUpVector); err != nil {
		utils.Error("Invalid -initial-up-vector: %v", err)
		os.Exit(1)
	}

	renderer, err := render.New(scene, opts)
	if err != nil {
		utils.Error("Failed to create renderer: %v", err)
		os.Exit(1)
	}

	if *screenshotMode {
		if err := renderer.Render(); err != nil {
			utils.Error("Render failed: %v", err)
			os.Exit(1)
		}
		if _, err := renderer.SaveScreenshot(cfg.Screenshot.ScreenshotDirectoryPath); err != nil {
			utils.Error("Screenshot failed: %v", err)
			os.Exit(1)
		}
		return
	}

	runWindow(renderer, cfg)
}

func loadConfiguration(path string) (*config.Config, error) {
	if path != "" {
		utils.Info("Loading configuration: %s", path)
		return config.Load(path)
	}
	return config.LoadDefault()
}

func loadScene(inputPath string, demo bool, cfg *config.Config) (*splat.Scene, error) {
	if demo {
		return demoScene(), nil
	}
	if inputPath == "" {
		flag.Usage()
		return nil, fmt.Errorf("no scene: pass -input-file-path or -demo")
	}
	return splat.Load(inputPath, splat.DecodeOptions{Ordered: cfg.Render.OrderedDecode})
}

// demoScene is a handful of axis-marker splats around the origin, handy for
// checking the camera controls without a scene file.
func demoScene() *splat.Scene {
	return splat.NewScene([]splat.Splat{
		{Position: math3.V3(0, 0, 0), Scale: math3.V3(1, 1, 1), Color: [4]uint8{244, 130, 80, 255}},
		{Position: math3.V3(0.1, 0, 0), Scale: math3.V3(1, 1, 1), Color: [4]uint8{200, 22, 1, 255}},
		{Position: math3.V3(0, 0.1, 0), Scale: math3.V3(1, 1, 1), Color: [4]uint8{200, 255, 255, 255}},
		{Position: math3.V3(0, 0, 0.1), Scale: math3.V3(1, 1, 1), Color: [4]uint8{22, 255, 255, 255}},
		{Position: math3.V3(0, -0.1, 0), Scale: math3.V3(1, 1, 1), Color: [4]uint8{22, 2, 255, 255}},
	})
}

func parseOptionalTriple(value string) (*math3.Vec3, error) {
	if value == "" {
		return nil, nil
	}
	v, err := parseTriple(value)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseTriple parses "x,y,z" or "(x,y,z)" into a vector.
func parseTriple(value string) (math3.Vec3, error) {
	cleaned := strings.NewReplacer("(", "", ")", "").Replace(value)
	parts := strings.SplitN(cleaned, ",", 3)
	if len(parts) != 3 {
		return math3.Vec3{}, fmt.Errorf("expected format (x,y,z), got %q", value)
	}

	var components [3]float32
	for i, part := range parts {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return math3.Vec3{}, fmt.Errorf("component %d of %q is not a valid float: %w", i+1, value, err)
		}
		components[i] = float32(parsed)
	}
	return math3.V3(components[0], components[1], components[2]), nil
}
