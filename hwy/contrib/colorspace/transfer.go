package colorspace

import (
	"fmt"
	"math"
	"sync"

	"github.com/ajroetker/go-yuv/hwy/contrib/depth"
)

// Transfer is a transfer characteristic (opto-electronic curve). Encode maps
// linear light in [0, 1] to the coded signal; Decode inverts it.
type Transfer int

const (
	TransferLinear Transfer = iota
	TransferSRGB
	// TransferBT709 is shared by BT.601 and SDR BT.2020.
	TransferBT709
	// TransferGamma22 is BT.470 System M.
	TransferGamma22
	// TransferGamma28 is BT.470 System B/G.
	TransferGamma28
	TransferSMPTE240
	TransferLog100
	TransferLog316
	// TransferPQ is SMPTE ST 2084.
	TransferPQ
	// TransferHLG is ARIB STD-B67.
	TransferHLG
	TransferSMPTE428
)

var transferNames = [...]string{"linear", "srgb", "bt709", "gamma22", "gamma28", "smpte240", "log100", "log316", "pq", "hlg", "smpte428"}

func (t Transfer) valid() bool {
	return t >= TransferLinear && t <= TransferSMPTE428
}

func (t Transfer) String() string {
	if !t.valid() {
		return fmt.Sprintf("Transfer(%d)", int(t))
	}
	return transferNames[t]
}

const (
	bt709Alpha = 1.09929682680944
	bt709Beta  = 0.018053968510807

	pqM1 = 2610.0 / 16384
	pqM2 = 2523.0 / 4096 * 128
	pqC1 = 3424.0 / 4096
	pqC2 = 2413.0 / 4096 * 32
	pqC3 = 2392.0 / 4096 * 32

	hlgA = 0.17883277
	hlgB = 1 - 4*hlgA
)

var hlgC = 0.5 - hlgA*math.Log(4*hlgA)

// Encode maps linear x to the coded value. Input is clamped to [0, 1].
func (t Transfer) Encode(x float64) float64 {
	x = clamp01(x)
	switch t {
	case TransferSRGB:
		if x <= 0.0031308 {
			return 12.92 * x
		}
		return 1.055*math.Pow(x, 1/2.4) - 0.055
	case TransferBT709:
		if x < bt709Beta {
			return 4.5 * x
		}
		return bt709Alpha*math.Pow(x, 0.45) - (bt709Alpha - 1)
	case TransferGamma22:
		return math.Pow(x, 1/2.2)
	case TransferGamma28:
		return math.Pow(x, 1/2.8)
	case TransferSMPTE240:
		if x < 0.0228 {
			return 4 * x
		}
		return 1.1115*math.Pow(x, 0.45) - 0.1115
	case TransferLog100:
		if x < 0.01 {
			return 0
		}
		return 1 + math.Log10(x)/2
	case TransferLog316:
		if x < math.Sqrt(10)/1000 {
			return 0
		}
		return 1 + math.Log10(x)/2.5
	case TransferPQ:
		y := math.Pow(x, pqM1)
		return math.Pow((pqC1+pqC2*y)/(1+pqC3*y), pqM2)
	case TransferHLG:
		if x <= 1.0/12 {
			return math.Sqrt(3 * x)
		}
		return hlgA*math.Log(12*x-hlgB) + hlgC
	case TransferSMPTE428:
		return math.Pow(48*x/52.37, 1/2.6)
	}
	return x
}

// Decode maps a coded value back to linear light, clamped to [0, 1].
func (t Transfer) Decode(v float64) float64 {
	v = clamp01(v)
	var x float64
	switch t {
	case TransferSRGB:
		if v <= 0.04045 {
			x = v / 12.92
		} else {
			x = math.Pow((v+0.055)/1.055, 2.4)
		}
	case TransferBT709:
		if v < 4.5*bt709Beta {
			x = v / 4.5
		} else {
			x = math.Pow((v+bt709Alpha-1)/bt709Alpha, 1/0.45)
		}
	case TransferGamma22:
		x = math.Pow(v, 2.2)
	case TransferGamma28:
		x = math.Pow(v, 2.8)
	case TransferSMPTE240:
		if v < 4*0.0228 {
			x = v / 4
		} else {
			x = math.Pow((v+0.1115)/1.1115, 1/0.45)
		}
	case TransferLog100:
		if v > 0 {
			x = math.Pow(10, 2*(v-1))
		}
	case TransferLog316:
		if v > 0 {
			x = math.Pow(10, 2.5*(v-1))
		}
	case TransferPQ:
		p := math.Pow(v, 1/pqM2)
		x = math.Pow(math.Max(p-pqC1, 0)/(pqC2-pqC3*p), 1/pqM1)
	case TransferHLG:
		if v <= 0.5 {
			x = v * v / 3
		} else {
			x = (math.Exp((v-hlgC)/hlgA) + hlgB) / 12
		}
	case TransferSMPTE428:
		x = 52.37 / 48 * math.Pow(v, 2.6)
	default:
		x = v
	}
	return clamp01(x)
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	return math.Min(x, 1)
}

type lutKey struct {
	t      Transfer
	bits   int
	decode bool
}

// luts caches code-to-code tables; they depend only on the key.
var luts sync.Map

// Table returns the transfer curve sampled at every code of a bits-deep
// signal: Table(bits, false)[c] is Encode(c/max)*max rounded. TransferLinear
// returns nil. Tables are built once per key and shared; callers must not
// modify them.
func (t Transfer) Table(bits int, decode bool) []int32 {
	if t == TransferLinear || !t.valid() {
		return nil
	}
	key := lutKey{t, bits, decode}
	if v, ok := luts.Load(key); ok {
		return v.([]int32)
	}
	maxCode := depth.MaxCode(bits)
	scale := float64(maxCode)
	table := make([]int32, maxCode+1)
	for i := range table {
		x := float64(i) / scale
		if decode {
			x = t.Decode(x)
		} else {
			x = t.Encode(x)
		}
		table[i] = min(int32(math.Floor(x*scale+0.5)), maxCode)
	}
	v, _ := luts.LoadOrStore(key, table)
	return v.([]int32)
}
