package alloc

import (
	"os"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Allocate maps anonymous memory used as an arena segment.
// Returned memory never moves and is zeroed by the kernel.
func Allocate(size uint64, useHugePages bool) (unsafe.Pointer, func(), error) {
	opts := unix.MAP_PRIVATE | unix.MAP_ANONYMOUS | unix.MAP_NORESERVE
	if useHugePages {
		// When using huge pages, the size must be a multiple of the hugepage size. Otherwise, munmap fails.
		opts |= unix.MAP_HUGETLB
	}
	allocatedSize := uintptr(size)
	dataP, err := unix.MmapPtr(-1, 0, nil, allocatedSize, unix.PROT_READ|unix.PROT_WRITE, opts)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "memory allocation failed")
	}

	return dataP, func() {
		// mmap might allocate more memory because it is always a multiple of the page size.
		// We need to provide that size to the munmap, not the original size we used for allocation, otherwise error is
		// returned and memory is not deallocated.
		// For hugepages there is no function returning the page size, but only two cases are possible: 2MB or 1GB.
		if useHugePages {
			// 2MB hugepages.
			if err := unmap(dataP, allocatedSize, 2*1024*1024); err == nil {
				return
			}

			// 1GB hugepages.
			if err := unmap(dataP, allocatedSize, 1024*1024*1024); err == nil {
				return
			}
		}

		// Standard pages.
		_ = unmap(dataP, allocatedSize, uintptr(os.Getpagesize()))
	}, nil
}

func unmap(ptr unsafe.Pointer, size, pageSize uintptr) error {
	return unix.MunmapPtr(ptr, (size+pageSize-1)/pageSize*pageSize)
}
