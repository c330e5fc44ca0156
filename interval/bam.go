package interval

import (
	"io"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
)

// ReadBAMAlignments reads every alignment record from r and buckets it by
// reference (contig), producing one Interval per record:
// [pos+1, pos+qseq_length] (1-based, inclusive), per spec.md §6's
// BAM-reader collaborator contract. Unmapped reads (nil Ref) are skipped.
// The returned header is needed by callers that also resolve BED contig
// names against it (see ResolveContig).
func ReadBAMAlignments(r io.Reader) (header *sam.Header, byContig map[string][]Interval, err error) {
	br, err := bam.NewReader(r, 1)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = br.Close() }()
	header = br.Header()
	byContig = make(map[string][]Interval)
	for {
		rec, err := br.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if rec.Ref == nil {
			continue
		}
		name := rec.Ref.Name()
		ivs := byContig[name]
		lower := PosType(rec.Pos + 1)
		upper := PosType(rec.Pos + rec.Seq.Length)
		ivs = append(ivs, Interval{Id: len(ivs), Lower: lower, Upper: upper})
		byContig[name] = ivs
	}
	return header, byContig, nil
}

// ReadBAMAlignmentsFromPath opens path and calls ReadBAMAlignments on its
// contents.
func ReadBAMAlignmentsFromPath(path string) (header *sam.Header, byContig map[string][]Interval, err error) {
	ctx := vcontext.Background()
	infile, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = infile.Close(ctx)
	}()
	return ReadBAMAlignments(infile.Reader(ctx))
}
