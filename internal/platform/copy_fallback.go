//go:build !linux && !darwin

package platform

// CopyFile falls back to buffered read/write on platforms without a
// specialized copy path.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	preallocate(params.DstFd, params.SrcSize)
	return copyReadWrite(params)
}
