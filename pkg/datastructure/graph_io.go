package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/mincutx/pkg/util"
)

// ReadMetisGraph reads a weighted undirected graph in METIS adjacency
// format. Files ending in .bz2 are decompressed transparently. Each
// undirected edge appears in the adjacency list of both endpoints; only the
// occurrence seen from the smaller endpoint inserts the edge.
func ReadMetisGraph(filename string) (*MutableGraph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)

	header, err := nextContentLine(sc)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "metis: missing header in %s", filename)
	}
	ff := strings.Fields(header)
	if len(ff) < 2 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "metis: malformed header %q", header)
	}
	numNodes, err := strconv.Atoi(ff[0])
	if err != nil {
		return nil, err
	}
	weighted := len(ff) >= 3 && strings.HasSuffix(ff[2], "1")

	g := NewMutableGraph()
	g.StartConstruction(numNodes)

	for n := 0; n < numNodes; n++ {
		line, err := nextContentLine(sc)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput,
				"metis: expected %d adjacency lines, got %d", numNodes, n)
		}
		fields := strings.Fields(line)
		step := 1
		if weighted {
			step = 2
		}
		for i := 0; i+step-1 < len(fields); i += step {
			target, err := strconv.Atoi(fields[i])
			if err != nil {
				return nil, err
			}
			target-- // metis vertices are 1-indexed
			var w int64 = 1
			if weighted {
				w, err = strconv.ParseInt(fields[i+1], 10, 64)
				if err != nil {
					return nil, err
				}
			}
			if n < target {
				g.NewEdgeOrder(Index(n), Index(target), w)
			}
		}
	}

	return g, nil
}

func nextContentLine(sc *bufio.Scanner) (string, error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		return line, nil
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

// WriteMetisGraph writes the live super-node graph in weighted METIS format,
// bzip2-compressed when the filename ends in .bz2.
func WriteMetisGraph(g *MutableGraph, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	var w *bufio.Writer
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
		if err != nil {
			return err
		}
		defer bz.Close()
		w = bufio.NewWriter(bz)
	} else {
		w = bufio.NewWriter(f)
	}

	fmt.Fprintf(w, "%d %d 001\n", g.NumberOfNodes(), g.NumberOfEdges())
	for n := Index(0); n < g.NumberOfNodes(); n++ {
		for e := Index(0); e < g.GetFirstInvalidEdge(n); e++ {
			target, wgt := g.GetEdge(n, e)
			if e > 0 {
				fmt.Fprintf(w, " ")
			}
			fmt.Fprintf(w, "%d %d", target+1, wgt)
		}
		fmt.Fprintf(w, "\n")
	}

	return w.Flush()
}

// ReadTerminals reads one vertex id per line (comment lines start with %).
func ReadTerminals(filename string) ([]Index, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	terminals := make([]Index, 0)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		t, err := strconv.Atoi(line)
		if err != nil {
			return nil, err
		}
		terminals = append(terminals, Index(t))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(terminals) < 2 {
		return nil, errors.New("terminal file must contain at least two vertices")
	}
	return terminals, nil
}
