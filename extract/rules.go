package extract

import (
	"fmt"
	"regexp"

	"github.com/colorfulnotion/dreamstats/reduce"
)

var (
	reRefab       = regexp.MustCompile(`num_refab_cmds\s+=\s+(\d+)`)
	reRefsb       = regexp.MustCompile(`num_refsb_cmds\s*=\s*(\d+)`)
	reDrfmb       = regexp.MustCompile(`num_drfmb_cmds\s+=\s+(\d+)`)
	reDrfmsb      = regexp.MustCompile(`num_drfmsb_cmds\s+=\s+(\d+)`)
	reDrfmab      = regexp.MustCompile(`num_drfmab_cmds\s+=\s+(\d+)`)
	reMitigUsed   = regexp.MustCompile(`mitig_used\.\d+\.\d+\.\d+\s*=\s*(\d+)`)
	reMitigWasted = regexp.MustCompile(`mitig_wasted\.\d+\.\d+\.\d+\s*=\s*(\d+)`)
	reBursty      = regexp.MustCompile(`bursty_access_count\[(\d+)-(\d*)\]\s*=\s*(\d+)`)
	reWritesDone  = regexp.MustCompile(`num_writes_done\s+=\s+(\d+)`)
	reReadsDone   = regexp.MustCompile(`num_reads_done\s+=\s+(\d+)`)
	reActs        = regexp.MustCompile(`num_act_cmds\s+=\s+(\d+)`)
	reWriteDrain  = regexp.MustCompile(`num_write_drain\s+=\s+(\d+)`)
	reIPC         = regexp.MustCompile(`CORE_\d+_IPC\s*:\s*(\d+\.?\d*)`)
	reMPKI        = regexp.MustCompile(`CORE_\d+_MPKI\s*:\s*(\d+\.?\d*)`)
	reCoreCycles  = regexp.MustCompile(`AVG_CORE_CYCLES\s*:\s*(\d+)`)
	reDramRFM     = regexp.MustCompile(`DRAM_RFM\s*:\s*(\d+)`)
	reTUSC        = regexp.MustCompile(`\[\d\]\[\d+\]\s*mean:\s*(\d+\.?\d*)\s*stddev:\s*(\d+\.?\d*)\s*q50:\s*(\d+\.?\d*)\s*q90:\s*(\d+\.?\d*)\s*q99:\s*(\d+\.?\d*)\s*max:\s*(\d+\.?\d*)`)
	reActsPerRow  = regexp.MustCompile(`acts_per_row_per_trefw\[(\d+)-(\d*)\]\s*=\s*(\d+)`)
	reRobTotal    = regexp.MustCompile(`CORE_\d+_TOTAL_ROB_STALLS\s*:\s*(\d+)`)
	reRobDrfm     = regexp.MustCompile(`CORE_\d+_DRFM_ROB_STALLS\s*:\s*(\d+)`)
	reReadLatency = regexp.MustCompile(`average_read_latency\s*=\s*(\d+\.?\d*)`)
	reInst        = regexp.MustCompile(`CORE_\d+_INST\s*:\s*(\d+)`)
	rePageMiss    = regexp.MustCompile(`OS_PAGE_MISS\s*:\s*(\d+)`)
	reOSPages     = regexp.MustCompile(`Initialized OS for (\d+) pages`)
	reBandwidth   = regexp.MustCompile(`average_bandwidth\s*=\s*(\d+\.?\d*)`)
	reNumCycles   = regexp.MustCompile(`num_cycles\s*=\s*(\d+)`)
)

const (
	// refsb counts one bank group at a time; eight make one all-bank refresh.
	refsbPerRefab = 8
	// activations are normalized per refresh across the 32 banks of a rank.
	banksPerRefresh = 32
	burstBuckets    = 32
	rowActBuckets   = 65
	// 3 channels x 64 bit / 8 bytes x 1 GT/s
	peakBandwidth = 3 * (64 / 8)
)

// rule contributes zero or more metrics from one document.
type rule struct {
	Name  string
	Apply func(d *document, out *builder, opts Options)
}

// builder collects the metrics of one record.
type builder struct {
	values    map[string]float64
	undefined map[string]string
}

func newBuilder() *builder {
	return &builder{values: make(map[string]float64), undefined: make(map[string]string)}
}

func (b *builder) set(key string, v float64) {
	b.values[key] = v
	delete(b.undefined, key)
}

// setOrUndefined stores v, or records why key has no value.
func (b *builder) setOrUndefined(key string, v float64, err error) {
	if err != nil {
		b.undefined[key] = err.Error()
		return
	}
	b.set(key, v)
}

func (b *builder) get(key string) (float64, bool) {
	v, ok := b.values[key]
	return v, ok
}

// rules is the ordered extraction battery. Every rule runs on every file;
// drfm_per_ref, acts_per_ref and write_drain_per_ref read AVG_REFAB and so
// come after refresh.
var rules = []rule{
	{"refresh", refreshRule},
	{"drfm_per_ref", drfmPerRefRule},
	{"mitigation_util", mitigationUtilRule},
	{"burst_length", burstLengthRule},
	{"burst_distribution", burstDistributionRule},
	{"acts_per_ref", actsPerRefRule},
	{"write_drain_per_ref", writeDrainPerRefRule},
	{"ipc", meanRule(reIPC, "AVG_IPC")},
	{"mpki", meanRule(reMPKI, "AVG_MPKI")},
	{"core_cycles", singleRule(reCoreCycles, "AVG_CORE_CYCLES")},
	{"dram_rfm", singleRule(reDramRFM, "NUM_RFM")},
	{"tusc", tuscRule},
	{"acts_per_row", actsPerRowRule},
	{"rob_stalls", robStallRule},
	{"read_latency", singleRule(reReadLatency, "AVG_READ_LATENCY")},
	{"apki", apkiRule},
	{"mem_util", memUtilRule},
	{"bw_util", bandwidthRule},
}

// RuleNames lists the extraction rules in evaluation order.
func RuleNames() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Name
	}
	return out
}

func meanRule(re *regexp.Regexp, key string) func(*document, *builder, Options) {
	return func(d *document, out *builder, _ Options) {
		s := d.series(re)
		if s == nil {
			return
		}
		v, err := reduce.Mean(s)
		out.setOrUndefined(key, v, err)
	}
}

func singleRule(re *regexp.Regexp, key string) func(*document, *builder, Options) {
	return func(d *document, out *builder, _ Options) {
		if v, ok := d.first(re); ok {
			out.set(key, v)
		}
	}
}

// refreshSeries is the per-channel all-bank refresh count: refsb/8 when
// same-bank refresh is logged, else refab.
func refreshSeries(d *document) []float64 {
	if sb := d.series(reRefsb); sb != nil {
		out := make([]float64, len(sb))
		for i, v := range sb {
			out[i] = v / refsbPerRefab
		}
		return out
	}
	return d.series(reRefab)
}

func refreshRule(d *document, out *builder, _ Options) {
	s := refreshSeries(d)
	if s == nil {
		return
	}
	v, err := reduce.Mean(s)
	out.setOrUndefined("AVG_REFAB", v, err)
}

// drfmPerRefRule uses the first of drfmb, drfmsb, drfmab whose mean is
// non-zero. No DRFM series at all leaves the metric absent.
func drfmPerRefRule(d *document, out *builder, _ Options) {
	found := false
	avg := 0.0
	for _, re := range []*regexp.Regexp{reDrfmb, reDrfmsb, reDrfmab} {
		s := d.series(re)
		if s == nil {
			continue
		}
		found = true
		if avg == 0 {
			avg, _ = reduce.Mean(s)
		}
	}
	if !found {
		return
	}
	refab, ok := out.get("AVG_REFAB")
	if !ok {
		out.setOrUndefined("AVG_DRFM_PER_REF", 0, fmt.Errorf("no refresh counts: %w", reduce.ErrUndefined))
		return
	}
	v, err := reduce.Ratio(avg, refab)
	out.setOrUndefined("AVG_DRFM_PER_REF", v, err)
}

func mitigationUtilRule(d *document, out *builder, _ Options) {
	used, wasted := d.series(reMitigUsed), d.series(reMitigWasted)
	if used == nil || wasted == nil {
		return
	}
	totalUsed := reduce.Sum(used)
	v, err := reduce.Ratio(totalUsed, totalUsed+reduce.Sum(wasted))
	out.setOrUndefined("MITIG_UTIL", reduce.Round(v, 6), err)
}

// burstBucketMeans returns the mean of each bursty_access_count bucket
// 0..32 (32 is the open-ended "32-" bucket) and whether any was present.
func burstBucketMeans(d *document) ([]float64, bool) {
	raw := d.buckets(reBursty, burstBuckets, false)
	means := make([]float64, burstBuckets+1)
	present := false
	for i := 0; i <= burstBuckets; i++ {
		s, ok := raw[i]
		if !ok {
			continue
		}
		present = true
		means[i], _ = reduce.Mean(s)
	}
	return means, present
}

func burstLengthRule(d *document, out *builder, _ Options) {
	means, present := burstBucketMeans(d)

	rw := 0.0
	if s := d.series(reWritesDone); s != nil {
		m, _ := reduce.Mean(s)
		rw += m
	}
	if s := d.series(reReadsDone); s != nil {
		m, _ := reduce.Mean(s)
		rw += m
	}

	if present {
		total := reduce.Sum(means)
		if total > 0 {
			out.set("TOTAL_READ_WRITES", rw)
		}
		v, err := reduce.Ratio(rw, total)
		out.setOrUndefined("AVG_BURST_LEN", v, err)
	}

	if s, ok := d.buckets(reBursty, burstBuckets, false)[31]; ok {
		v, err := reduce.Mean(s)
		out.setOrUndefined("AVG_BURST31", v, err)
	}
}

// BurstPctKey names bucket i of the bursty access length distribution.
func BurstPctKey(i int) string {
	if i == burstBuckets {
		return fmt.Sprintf("BURST_PCT_%dP", burstBuckets)
	}
	return fmt.Sprintf("BURST_PCT_%d", i)
}

func burstDistributionRule(d *document, out *builder, _ Options) {
	means, present := burstBucketMeans(d)
	if !present {
		return
	}
	pct, err := reduce.Percentages(means)
	for i := range means {
		if err != nil {
			out.setOrUndefined(BurstPctKey(i), 0, err)
			continue
		}
		out.set(BurstPctKey(i), pct[i])
	}
}

func actsPerRefRule(d *document, out *builder, _ Options) {
	acts, ref := d.series(reActs), refreshSeries(d)
	if acts == nil || ref == nil {
		return
	}
	if avg, ok := out.get("AVG_REFAB"); !ok || avg <= 0 {
		return
	}
	ratios, err := reduce.PairwiseRatios(acts, ref, banksPerRefresh)
	if err != nil {
		out.setOrUndefined("ACTS_PER_REF", 0, err)
		return
	}
	v, err := reduce.Mean(ratios)
	out.setOrUndefined("ACTS_PER_REF", reduce.Round(v, 3), err)
}

func writeDrainPerRefRule(d *document, out *builder, _ Options) {
	drains, ref := d.series(reWriteDrain), refreshSeries(d)
	if drains == nil || ref == nil {
		return
	}
	if avg, ok := out.get("AVG_REFAB"); !ok || avg <= 0 {
		return
	}
	ratios, err := reduce.PairwiseRatios(drains, ref, 1)
	if err != nil {
		out.setOrUndefined("WRITE_DRAIN_PER_REF", 0, err)
		return
	}
	v, err := reduce.Mean(ratios)
	out.setOrUndefined("WRITE_DRAIN_PER_REF", v, err)
}

func tuscRule(d *document, out *builder, _ Options) {
	if len(d.matches(reTUSC)) == 0 {
		return
	}
	mean, err := reduce.Mean(d.group(reTUSC, 1))
	out.setOrUndefined("TUSC.MEAN", mean, err)
	stddev, err := reduce.Mean(d.group(reTUSC, 2))
	out.setOrUndefined("TUSC.StdDev", stddev, err)
	q99, err := reduce.Mean(d.group(reTUSC, 5))
	out.setOrUndefined("TUSC.Q99", q99, err)
	peak, err := reduce.Max(d.group(reTUSC, 6))
	out.setOrUndefined("TUSC.MAX", peak, err)
}

// RowActPctKey names bucket i of the activations-per-row distribution.
func RowActPctKey(i int) string {
	if i == rowActBuckets {
		return fmt.Sprintf("ACTS_PER_ROW_PCT_%dP", rowActBuckets)
	}
	return fmt.Sprintf("ACTS_PER_ROW_PCT_%d", i)
}

func actsPerRowRule(d *document, out *builder, opts Options) {
	if !opts.RowActivations {
		return
	}
	raw := d.buckets(reActsPerRow, rowActBuckets, true)
	var idx []int
	var counts []float64
	for i := 0; i <= rowActBuckets; i++ {
		if s, ok := raw[i]; ok {
			idx = append(idx, i)
			counts = append(counts, s[0])
		}
	}
	if len(counts) == 0 {
		return
	}
	pct, err := reduce.Percentages(counts)
	for n, i := range idx {
		if err != nil {
			out.setOrUndefined(RowActPctKey(i), 0, err)
			continue
		}
		out.set(RowActPctKey(i), reduce.Round(pct[n], 2))
	}
}

func robStallRule(d *document, out *builder, _ Options) {
	total, drfm := d.series(reRobTotal), d.series(reRobDrfm)
	if total == nil || drfm == nil {
		return
	}
	avg, err := reduce.Mean(total)
	out.setOrUndefined("TOTAL_ROB_STALLS", avg, err)

	n := len(total)
	if len(drfm) < n {
		n = len(drfm)
	}
	nonDrfm := make([]float64, n)
	for i := 0; i < n; i++ {
		nonDrfm[i] = total[i] - drfm[i]
	}
	ratios, err := reduce.PairwiseRatios(total[:n], nonDrfm, 1)
	if err != nil {
		out.setOrUndefined("DRFM_ROB_STALL_PERCENT", 0, err)
		return
	}
	g, err := reduce.Geomean(ratios)
	out.setOrUndefined("DRFM_ROB_STALL_PERCENT", reduce.Round(g, 5), err)
}

func apkiRule(d *document, out *builder, _ Options) {
	inst := d.series(reInst)
	if inst == nil {
		return
	}
	acts := reduce.Sum(d.series(reActs))
	v, err := reduce.Ratio(acts*1000, reduce.Sum(inst))
	out.setOrUndefined("APKI", v, err)
}

func memUtilRule(d *document, out *builder, _ Options) {
	misses := d.series(rePageMiss)
	pages, ok := d.first(reOSPages)
	if misses == nil || !ok {
		return
	}
	v, err := reduce.Ratio(reduce.Sum(misses), pages)
	out.setOrUndefined("mem_util", v*100, err)
}

func bandwidthRule(d *document, out *builder, _ Options) {
	bw := d.series(reBandwidth)
	if bw == nil || d.series(reNumCycles) == nil || d.series(reRefsb) == nil {
		return
	}
	avg, err := reduce.Mean(bw)
	if err != nil {
		out.setOrUndefined("BW_UTIL", 0, err)
		return
	}
	out.set("BW_UTIL", reduce.Round(avg/peakBandwidth*100, 2))
}
