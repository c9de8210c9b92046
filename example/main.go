package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/richgrov/mcacollide"
	"github.com/richgrov/mcacollide/blocks"
	"github.com/richgrov/mcacollide/boxio"
)

func parseCoordinates(s string) (mcacollide.BlockCoordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mcacollide.BlockCoordinates{}, fmt.Errorf("%q is not x,y,z", s)
	}

	var values [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return mcacollide.BlockCoordinates{}, fmt.Errorf("%q is not x,y,z: %w", s, err)
		}
		values[i] = v
	}

	return mcacollide.NewBlockCoordinates(values[0], values[1], values[2]), nil
}

func main() {
	dir := flag.String("dir", "world/region", "directory holding the region files")
	from := flag.String("from", "0,-64,0", "first corner of the exported box, x,y,z")
	to := flag.String("to", "15,319,15", "opposite corner of the exported box, x,y,z")
	skip := flag.String("skip", "", "comma separated blocks to treat as empty space")
	skipNonCollidable := flag.Bool("skip-noncollidable", false, "also skip blocks entities walk through")
	out := flag.String("out", "", "write boxes to this file instead of printing them")
	compress := flag.String("compress", "zstd", "compression of the output file: none, zstd, lz4 or br")
	workers := flag.Int("workers", 0, "region files decoded at once, 0 for all")
	flag.Parse()

	start, err := parseCoordinates(*from)
	if err != nil {
		log.Fatalf("-from: %s", err)
	}
	end, err := parseCoordinates(*to)
	if err != nil {
		log.Fatalf("-to: %s", err)
	}
	comp, err := boxio.ParseCompression(*compress)
	if err != nil {
		log.Fatal(err)
	}

	params := mcacollide.ExportParams{
		Start:   start,
		End:     end,
		Workers: *workers,
	}
	if *skip != "" {
		params.SkipBlocks = strings.Split(*skip, ",")
	}
	if *skipNonCollidable {
		params.SkipBlocks = append(params.SkipBlocks, blocks.NonCollidable()...)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("exporting %v to %v from %s", start, end, *dir)
	began := time.Now()

	boxes, err := mcacollide.Export(ctx, *dir, params)
	if err != nil {
		log.Fatalf("export failed: %s", err)
	}

	volume := 0
	for _, box := range boxes {
		volume += box.Volume()
	}
	log.Printf("merged %d blocks into %d boxes in %s", volume, len(boxes), time.Since(began))

	if *out == "" {
		for _, box := range boxes {
			min, max := box.Bounds()
			fmt.Printf("%v %v\n", min, max)
		}
		return
	}

	if err := writeBoxes(*out, boxes, comp); err != nil {
		log.Fatalf("writing %s: %s", *out, err)
	}
}

func writeBoxes(path string, boxes []mcacollide.BlockSequence, comp boxio.Compression) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := boxio.Encode(file, boxes, boxio.WithCompression(comp)); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
