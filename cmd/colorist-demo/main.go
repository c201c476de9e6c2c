package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/rubo77/colorist/profile"
	"github.com/rubo77/colorist/transform"
)

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()

	if len(os.Args) != 8 {
		fmt.Fprintln(os.Stderr, "usage: colorist-demo src-profile src-format src-depth dst-profile dst-format dst-depth pixel-count")
		fmt.Fprintln(os.Stderr, "  profile: path to an ICC file, or - for the XYZ pass-through space")
		fmt.Fprintln(os.Stderr, "  format:  rgb | rgba | xyz")
		fmt.Fprintln(os.Stderr, "reads a raw pixel buffer from stdin, writes the converted buffer to stdout")
		os.Exit(1)
	}

	srcProfile, err := loadProfile(os.Args[1])
	if err != nil {
		return
	}
	srcFormat, err := parseFormat(os.Args[2])
	if err != nil {
		return
	}
	srcDepth, err := strconv.Atoi(os.Args[3])
	if err != nil {
		return
	}
	dstProfile, err := loadProfile(os.Args[4])
	if err != nil {
		return
	}
	dstFormat, err := parseFormat(os.Args[5])
	if err != nil {
		return
	}
	dstDepth, err := strconv.Atoi(os.Args[6])
	if err != nil {
		return
	}
	pixelCount, err := strconv.Atoi(os.Args[7])
	if err != nil {
		return
	}

	src := make([]byte, transform.FormatToPixelBytes(srcFormat, srcDepth)*pixelCount)
	if _, err = io.ReadFull(os.Stdin, src); err != nil {
		return
	}

	dst := make([]byte, transform.FormatToPixelBytes(dstFormat, dstDepth)*pixelCount)
	tr := transform.Create(srcProfile, srcFormat, srcDepth, dstProfile, dstFormat, dstDepth)
	if err = tr.Run(runtime.NumCPU(), src, dst, pixelCount); err != nil {
		return
	}
	tr.Destroy()

	_, err = os.Stdout.Write(dst)
}

func loadProfile(path string) (*profile.Profile, error) {
	if path == "-" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return profile.Parse(data, "")
}

func parseFormat(s string) (transform.PixelFormat, error) {
	switch s {
	case "rgb":
		return transform.FormatRGB, nil
	case "rgba":
		return transform.FormatRGBA, nil
	case "xyz":
		return transform.FormatXYZ, nil
	default:
		return 0, fmt.Errorf("unknown pixel format %q", s)
	}
}
