package field

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/picvis/picdraw"
	"github.com/picvis/picdraw/record"
	"gonum.org/v1/gonum/mat"
)

// value is what the synthetic files hold for key k, species s at row z, column x.
func value(k Key, s, z, x int) float64 {
	return float64(int(k)*1000 + s*100 + z*10 + x)
}

// writeField writes a synthetic NASA field file with the given grid and returns its path.
func writeField(Te *testing.T, dir string, t, nx, nz, nss int) string {
	Te.Helper()
	R := record.New(record.FieldLayout(nx, nz, nss))
	R.Set("it", float64(t))
	R.Set("nnx", float64(nx))
	R.Set("nnz", float64(nz))
	R.Set("xmax", float64(nx))
	R.Set("zmax", float64(nz))
	R.Set("time", 12.5)
	R.Set("wpewce", 2)
	for _, k := range Keys() {
		n := 1
		if k.PerSpecies() {
			n = nss
		}
		v := make([]float64, 0, n*nx*nz)
		for s := 0; s < n; s++ {
			for z := 0; z < nz; z++ {
				for x := 0; x < nx; x++ {
					v = append(v, value(k, s, z, x))
				}
			}
		}
		if err := R.Set(k.String(), v...); err != nil {
			Te.Fatal(err)
		}
	}
	xe := make([]float64, nx)
	for i := range xe {
		xe[i] = 0.5 * float64(i)
	}
	ze := make([]float64, nz)
	for i := range ze {
		ze[i] = float64(-i)
	}
	R.Set("xe", xe...)
	R.Set("ze", ze...)
	mass := make([]float64, nss)
	for i := range mass {
		mass[i] = 1
		if i%2 == 0 {
			mass[i] = 25
		}
	}
	R.Set("mass", mass...)
	path := filepath.Join(dir, FileName(t))
	if err := record.WriteFile(path, R); err != nil {
		Te.Fatal(err)
	}
	return path
}

func TestLoad(Te *testing.T) {
	path := writeField(Te, Te.TempDir(), 7, 6, 4, 4)
	S, err := Load(path, 0, 0, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if nx, nz := S.Dims(); nx != 6 || nz != 4 {
		Te.Errorf("grid %dx%d, want 6x4", nx, nz)
	}
	if S.Header().It != 7 || S.Time() != 12.5 || S.Wpewce() != 2 {
		Te.Errorf("wrong scalars: %+v time %g wpewce %g", S.Header(), S.Time(), S.Wpewce())
	}
	if diff := cmp.Diff([]float64{25, 1, 25, 1}, S.Mass()); diff != "" {
		Te.Errorf("mass mismatch (-want +got):\n%s", diff)
	}
	if n := len(S.Field(Bx)); n != 1 {
		Te.Errorf("Bx has %d planes", n)
	}
	if n := len(S.Field(Pxz)); n != 4 {
		Te.Errorf("pxz has %d planes", n)
	}
	if v := S.Field(Dns)[3].At(2, 5); v != value(Dns, 3, 2, 5) {
		Te.Errorf("dns[3](2,5) = %g", v)
	}
	//an explicit grid must match the header
	if _, err := Load(path, 6, 4, 4); err != nil {
		Te.Error(err)
	}
	_, err = Load(path, 5, 4, 4)
	if !errors.Is(err, picdraw.ErrMalformedRecord) {
		Te.Errorf("mismatched grid gave %v", err)
	}
}

func TestLoadTruncated(Te *testing.T) {
	dir := Te.TempDir()
	path := writeField(Te, dir, 1, 4, 4, 4)
	b, err := os.ReadFile(path)
	if err != nil {
		Te.Fatal(err)
	}
	if err := os.WriteFile(path, b[:len(b)/2], 0o644); err != nil {
		Te.Fatal(err)
	}
	_, err = Load(path, 0, 0, 0)
	if !errors.Is(err, picdraw.ErrMalformedRecord) {
		Te.Errorf("truncated file gave %v", err)
	}
}

// writeHeader writes a file holding only the leading scalars of a field record.
func writeHeader(Te *testing.T, path string, nx, nz int) {
	Te.Helper()
	R := record.New(record.FieldHeaderLayout())
	R.Set("it", 1)
	R.Set("nnx", float64(nx))
	R.Set("nnz", float64(nz))
	if err := record.WriteFile(path, R); err != nil {
		Te.Fatal(err)
	}
}

func TestLoadOversizedHeader(Te *testing.T) {
	dir := Te.TempDir()
	for i, c := range []struct {
		name   string
		nx, nz int
	}{
		{FileName(1), 1 << 30, 1 << 30},
		{FileName(2), 50000, 50000},
		{FileName(3) + ".gz", 50000, 50000},
		{FileName(4) + ".zst", 1 << 30, 1 << 30},
		{FileName(5), -3, 4},
	} {
		path := filepath.Join(dir, c.name)
		writeHeader(Te, path, c.nx, c.nz)
		_, err := Load(path, 0, 0, 0)
		if !errors.Is(err, picdraw.ErrMalformedRecord) {
			Te.Errorf("case %d: header grid %dx%d in %s gave %v", i, c.nx, c.nz, c.name, err)
		}
	}
}

func TestWindow(Te *testing.T) {
	S, err := Load(writeField(Te, Te.TempDir(), 1, 8, 6, 4), 0, 0, 0)
	if err != nil {
		Te.Fatal(err)
	}
	w := Window{XMin: 2, XMax: 7, ZMin: 1, ZMax: 4}
	if err := S.SetWindow(w); err != nil {
		Te.Fatal(err)
	}
	for _, k := range Keys() {
		for s, p := range S.Field(k) {
			r, c := p.Dims()
			if r != 3 || c != 5 {
				Te.Fatalf("%s plane is %dx%d, want 3x5", k, r, c)
			}
			if v := p.At(0, 0); v != value(k, s, 1, 2) {
				Te.Errorf("%s[%d] window origin holds %g", k, s, v)
			}
		}
	}
	if diff := cmp.Diff([]float64{1, 1.5, 2, 2.5, 3}, S.X()); diff != "" {
		Te.Errorf("x coordinates mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{-1, -2, -3}, S.Z()); diff != "" {
		Te.Errorf("z coordinates mismatch (-want +got):\n%s", diff)
	}
	//windows are relative to the full grid, so setting the same one twice is a no-op
	before := mat.DenseCopyOf(S.Field(Ey)[0])
	if err := S.SetWindow(w); err != nil {
		Te.Fatal(err)
	}
	if !mat.Equal(before, S.Field(Ey)[0]) {
		Te.Error("setting the same window twice changed the view")
	}
	//views alias the snapshot
	S.Field(By)[0].Set(0, 0, -1)
	if v := S.Full(By)[0].At(1, 2); v != -1 {
		Te.Errorf("write through the window not seen in the full plane: %g", v)
	}
	//going back to the whole grid after any narrower window gives the full planes
	for _, narrow := range []Window{{0, 1, 0, 1}, {7, 8, 5, 6}, {3, 5, 2, 6}} {
		if err := S.SetWindow(narrow); err != nil {
			Te.Fatal(err)
		}
		if err := S.SetWindow(Window{0, 8, 0, 6}); err != nil {
			Te.Fatal(err)
		}
		for _, k := range Keys() {
			for s, p := range S.Field(k) {
				if !mat.Equal(p, S.Full(k)[s]) {
					Te.Errorf("after %s and the full window, %s[%d] differs from the full plane", narrow, k, s)
				}
			}
		}
		if diff := cmp.Diff([]float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}, S.X()); diff != "" {
			Te.Errorf("x coordinates after %s and the full window (-want +got):\n%s", narrow, diff)
		}
		if len(S.Z()) != 6 {
			Te.Errorf("%d z coordinates after %s and the full window", len(S.Z()), narrow)
		}
	}
}

func TestInvalidWindow(Te *testing.T) {
	S, err := Load(writeField(Te, Te.TempDir(), 1, 8, 6, 2), 0, 0, 2)
	if err != nil {
		Te.Fatal(err)
	}
	good := Window{1, 5, 1, 5}
	if err := S.SetWindow(good); err != nil {
		Te.Fatal(err)
	}
	for _, w := range []Window{
		{-1, 4, 0, 4},
		{0, 9, 0, 4},
		{4, 4, 0, 4},
		{5, 3, 0, 4},
		{0, 4, 0, 7},
		{0, 4, 3, 2},
	} {
		err := S.SetWindow(w)
		if !errors.Is(err, picdraw.ErrInvalidWindow) {
			Te.Errorf("window %s gave %v", w, err)
		}
		if S.Window() != good {
			Te.Errorf("a failed SetWindow(%s) changed the window to %s", w, S.Window())
		}
	}
}

func TestFieldByName(Te *testing.T) {
	S, err := Load(writeField(Te, Te.TempDir(), 1, 3, 3, 4), 0, 0, 0)
	if err != nil {
		Te.Fatal(err)
	}
	p, err := S.FieldByName("vzs")
	if err != nil {
		Te.Fatal(err)
	}
	if p[0] != S.Field(Vzs)[0] {
		Te.Error("FieldByName and Field disagree")
	}
	if _, err := S.FieldByName("Bq"); !errors.Is(err, picdraw.ErrUnknownField) {
		Te.Errorf("unknown name gave %v", err)
	}
}

func TestLineCut(Te *testing.T) {
	S, err := Load(writeField(Te, Te.TempDir(), 1, 5, 4, 2), 0, 0, 2)
	if err != nil {
		Te.Fatal(err)
	}
	coords, prof, err := S.LineCut(Bz, picdraw.X, 3)
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0, -1, -2, -3}, coords); diff != "" {
		Te.Errorf("z coordinates mismatch (-want +got):\n%s", diff)
	}
	want := []float64{value(Bz, 0, 0, 3), value(Bz, 0, 1, 3), value(Bz, 0, 2, 3), value(Bz, 0, 3, 3)}
	if diff := cmp.Diff(want, prof[0]); diff != "" {
		Te.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
	coords, prof, err = S.LineCut(Dns, picdraw.Z, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if len(prof) != 2 || len(coords) != 5 || prof[1][4] != value(Dns, 1, 1, 4) {
		Te.Errorf("bad z cut: %v %v", coords, prof)
	}
	if _, _, err := S.LineCut(Bz, picdraw.Y, 0); !errors.Is(err, picdraw.ErrInvalidAxis) {
		Te.Errorf("cut along y gave %v", err)
	}
	if _, _, err := S.LineCut(Bz, picdraw.X, 5); !errors.Is(err, picdraw.ErrInvalidWindow) {
		Te.Errorf("cut outside the window gave %v", err)
	}
}

func TestTimeIndex(Te *testing.T) {
	for name, want := range map[string]string{
		"fields-00123.dat":     "123",
		"run/fields-01000.dat": "1000",
		"fields-00000.dat":     "0",
		FileName(42):           "42",
	} {
		got, err := TimeIndex(name)
		if err != nil {
			Te.Errorf("%s: %v", name, err)
			continue
		}
		if got != want {
			Te.Errorf("TimeIndex(%q) = %q, want %q", name, got, want)
		}
	}
	for _, name := range []string{"fields.dat", "dist-00001.dat", "fields-0a123.dat"} {
		if _, err := TimeIndex(name); !errors.Is(err, picdraw.ErrMalformedRecord) {
			Te.Errorf("TimeIndex(%q) gave %v", name, err)
		}
	}
}

func TestKeys(Te *testing.T) {
	for _, k := range Keys() {
		got, err := ParseKey(k.String())
		if err != nil || got != k {
			Te.Errorf("ParseKey(%q) = %v, %v", k, got, err)
		}
	}
	if Pressure(picdraw.Z, picdraw.X) != Pxz || Pressure(picdraw.Y, picdraw.Y) != Pyy {
		Te.Error("wrong pressure keys")
	}
	if Velocity(picdraw.Y) != Vys {
		Te.Error("wrong velocity key")
	}
}

// writeLANL writes an info file and, for each key, a .gda file with nt time slices
// where slice t holds key index*100 + t*10 + cell.
func writeLANL(Te *testing.T, dir string, keys []string, nx, nz, nt int) {
	Te.Helper()
	info := record.New(record.InfoLayout())
	info.Set("nx", float64(nx))
	info.Set("ny", 1)
	info.Set("nz", float64(nz))
	info.Set("lx", 10)
	info.Set("ly", 1)
	info.Set("lz", 5)
	if err := record.WriteFile(filepath.Join(dir, "info"), info); err != nil {
		Te.Fatal(err)
	}
	for ik, k := range keys {
		f, err := os.Create(filepath.Join(dir, k+".gda"))
		if err != nil {
			Te.Fatal(err)
		}
		for t := 1; t <= nt; t++ {
			R := record.New(record.GDALayout(nx, nz))
			v := R.MustValues("field")
			for i := range v {
				v[i] = float64(ik*100 + t*10 + i)
			}
			if err := record.Encode(f, R); err != nil {
				Te.Fatal(err)
			}
			//the two trailing words of each slice
			if _, err := f.Write(make([]byte, 8)); err != nil {
				Te.Fatal(err)
			}
		}
		f.Close()
	}
}

func TestLANL(Te *testing.T) {
	dir := Te.TempDir()
	keys := []string{"bx", "ne"}
	writeLANL(Te, dir, keys, 3, 2, 3)
	inf, err := ReadInfo(filepath.Join(dir, "info"))
	if err != nil {
		Te.Fatal(err)
	}
	want := Info{Grid: [3]int{3, 1, 2}, L: [3]float64{10, 1, 5}}
	if diff := cmp.Diff(want, inf); diff != "" {
		Te.Errorf("info mismatch (-want +got):\n%s", diff)
	}
	F, _, err := LoadLANLDir(dir, keys, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(keys, F.Keys()); diff != "" {
		Te.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	p, err := F.Plane("ne")
	if err != nil {
		Te.Fatal(err)
	}
	if r, c := p.Dims(); r != 2 || c != 3 {
		Te.Fatalf("plane is %dx%d", r, c)
	}
	if v := p.At(1, 2); v != 100+20+5 {
		Te.Errorf("ne(1,2) at time 2 is %g", v)
	}
	if _, err := F.Plane("bz"); !errors.Is(err, picdraw.ErrUnknownField) {
		Te.Errorf("missing component gave %v", err)
	}
	if _, err := LoadLANL(dir, keys, 3, 2, 4); !errors.Is(err, picdraw.ErrMalformedRecord) {
		Te.Errorf("time past the end gave %v", err)
	}
	if _, err := LoadLANL(dir, keys, 3, 2, 0); !errors.Is(err, picdraw.ErrInvalidWindow) {
		Te.Errorf("time 0 gave %v", err)
	}
	for _, g := range [][2]int{{-3, 2}, {3, 0}, {1 << 40, 1 << 40}} {
		if _, err := LoadLANL(dir, keys, g[0], g[1], 1); !errors.Is(err, picdraw.ErrMalformedRecord) {
			Te.Errorf("grid %dx%d gave %v", g[0], g[1], err)
		}
	}
	if _, err := LoadLANL(dir, keys, 3, 2, 1<<62); !errors.Is(err, picdraw.ErrMalformedRecord) {
		Te.Errorf("a time slice past any file gave %v", err)
	}
}
