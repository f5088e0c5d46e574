package rates

import (
	"bytes"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/sys/unix"
)

// ScanTable keeps a raw rate file resident through a read-only memory
// mapping and answers probes with a linear byte search for "<prefix>," at a
// line start. Opening is near instant because nothing is parsed up front;
// each probe is Θ(file size) in the worst case. This is the intentionally
// slow option whose only advantage is near-zero startup cost.
//
// The file is never deduplicated, so the first record in file order wins
// when a prefix appears twice; DuplicatePolicy does not apply here.
type ScanTable struct {
	data []byte
	f    *os.File
}

// OpenScanTable maps path read-only.
func OpenScanTable(path string) (*ScanTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrBackendUnavailable, path, err)
	}
	if info.Size() == 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %s is empty", ErrBackendUnavailable, path)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: mmap %s: %v", ErrBackendUnavailable, path, err)
	}
	return &ScanTable{data: data, f: f}, nil
}

func (t *ScanTable) LookupExact(prefix string) (decimal.Decimal, bool, error) {
	pat := append([]byte(prefix), ',')
	off := 0
	for off < len(t.data) {
		i := bytes.Index(t.data[off:], pat)
		if i < 0 {
			break
		}
		pos := off + i
		// Only a match at the start of a line is a record for this prefix;
		// anywhere else it is the tail of a longer prefix.
		if pos == 0 || t.data[pos-1] == '\n' {
			return t.costAt(pos + len(pat))
		}
		off = pos + 1
	}
	return decimal.Decimal{}, false, nil
}

// costAt parses the cost field starting at off, up to end of line.
func (t *ScanTable) costAt(off int) (decimal.Decimal, bool, error) {
	end := bytes.IndexByte(t.data[off:], '\n')
	if end < 0 {
		end = len(t.data) - off
	}
	field := string(bytes.TrimRight(t.data[off:off+end], "\r"))
	cost, err := ParseCost(field)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	return cost, true, nil
}

// Len counts records by scanning for newlines; the mapped file is the only
// representation this backend has, so this walks the whole buffer.
func (t *ScanTable) Len() int {
	n := bytes.Count(t.data, []byte{'\n'})
	if len(t.data) > 0 && t.data[len(t.data)-1] != '\n' {
		n++
	}
	return n
}

// Close unmaps the file and closes it. The table must not be used after.
func (t *ScanTable) Close() error {
	if t.data == nil {
		return nil
	}
	data := t.data
	t.data = nil
	if err := unix.Munmap(data); err != nil {
		t.f.Close()
		return fmt.Errorf("munmap: %w", err)
	}
	return t.f.Close()
}
