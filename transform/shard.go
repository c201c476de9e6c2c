package transform

import "github.com/rubo77/colorist/task"

// slab is one disjoint, contiguous range of pixels assigned to a single
// worker: [start, start+count) within the full pixel buffer.
type slab struct {
	start, count int
}

// splitSlabs partitions pixelCount pixels into taskCount contiguous slabs:
// the first taskCount-1 slabs each get floor(pixelCount/taskCount) pixels,
// the last gets the remainder, so slab counts always sum to pixelCount.
// taskCount is clamped to pixelCount when it would otherwise exceed it, and
// a pixelCount of zero yields no slabs at all.
func splitSlabs(taskCount, pixelCount int) []slab {
	if pixelCount == 0 {
		return nil
	}
	if taskCount > pixelCount {
		taskCount = pixelCount
	}
	if taskCount < 1 {
		taskCount = 1
	}

	slabs := make([]slab, taskCount)
	base := pixelCount / taskCount
	pos := 0
	for i := 0; i < taskCount-1; i++ {
		slabs[i] = slab{start: pos, count: base}
		pos += base
	}
	slabs[taskCount-1] = slab{start: pos, count: pixelCount - pos}
	return slabs
}

// runSharded executes fn once per slab of the (src, dst) buffers, given
// each buffer's fixed per-pixel byte stride. A single slab runs inline on
// the calling goroutine (no worker spawned); more than one slab runs each
// on its own task.Task, joined before runSharded returns, matching the
// fork-join-per-run scheduling model: no work-stealing queue, no
// long-lived pool, each worker touches only its own disjoint byte range.
func runSharded(taskCount, pixelCount, srcStride, dstStride int, src, dst []byte, fn func(slab slab, src, dst []byte)) {
	slabs := splitSlabs(taskCount, pixelCount)
	if len(slabs) == 0 {
		return
	}
	if len(slabs) == 1 {
		s := slabs[0]
		fn(s, src[s.start*srcStride:(s.start+s.count)*srcStride], dst[s.start*dstStride:(s.start+s.count)*dstStride])
		return
	}

	type slabArg struct {
		s        slab
		src, dst []byte
	}
	args := make([]any, len(slabs))
	for i, s := range slabs {
		args[i] = slabArg{
			s:   s,
			src: src[s.start*srcStride : (s.start+s.count)*srcStride],
			dst: dst[s.start*dstStride : (s.start+s.count)*dstStride],
		}
	}
	task.RunAll(func(arg any) {
		a := arg.(slabArg)
		fn(a.s, a.src, a.dst)
	}, args)
}
