package removeall_test

import (
	"os"
	"path/filepath"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "code.cloudfoundry.org/quillfs/removeall"
)

var _ = Describe("Removeall", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	Describe("RemoveAll", func() {
		It("removes a regular file", func() {
			path := filepath.Join(tmpDir, "a_file.txt")
			Expect(os.WriteFile(path, []byte("contents"), 0600)).To(Succeed())

			Expect(RemoveAll(path)).To(Succeed())
			Expect(path).NotTo(BeAnExistingFile())
		})

		It("removes a symlink without following it", func() {
			target := filepath.Join(tmpDir, "target")
			Expect(os.Mkdir(target, 0755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(target, "a_file"), []byte{}, 0600)).To(Succeed())
			link := filepath.Join(tmpDir, "link")
			Expect(os.Symlink(target, link)).To(Succeed())

			Expect(RemoveAll(link)).To(Succeed())
			Expect(link).NotTo(BeAnExistingFile())
			Expect(filepath.Join(target, "a_file")).To(BeAnExistingFile())
		})

		It("removes a directory and everything underneath it", func() {
			dir := filepath.Join(tmpDir, "a_dir", "nested")
			Expect(os.MkdirAll(dir, 0755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(dir, "file1"), []byte{}, 0600)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(dir, "file2"), []byte{}, 0600)).To(Succeed())

			Expect(RemoveAll(filepath.Join(tmpDir, "a_dir"))).To(Succeed())
			Expect(filepath.Join(tmpDir, "a_dir")).NotTo(BeADirectory())
		})

		It("succeeds if the path does not exist", func() {
			Expect(RemoveAll(filepath.Join(tmpDir, "not", "a", "path"))).To(Succeed())
		})

		It("can remove paths deeper than PATH_MAX", func() {
			dir := filepath.Join(tmpDir, "deep")
			Expect(os.Mkdir(dir, 0755)).To(Succeed())
			createDirectories(dir, 50, 100)
			Expect(RemoveAll(dir)).To(Succeed())
			Expect(dir).NotTo(BeADirectory())
		})
	})

	Describe("RemoveContents", func() {
		It("empties a directory but keeps the directory itself", func() {
			dir := filepath.Join(tmpDir, "a_dir")
			Expect(os.MkdirAll(filepath.Join(dir, "nested"), 0755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(dir, "a_file"), []byte{}, 0600)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(dir, "nested", "another_file"), []byte{}, 0600)).To(Succeed())

			Expect(RemoveContents(dir)).To(Succeed())
			Expect(dir).To(BeADirectory())

			entries, err := os.ReadDir(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("succeeds if the path does not exist", func() {
			Expect(RemoveContents(filepath.Join(tmpDir, "nowhere"))).To(Succeed())
		})

		It("deletes a non-directory outright", func() {
			path := filepath.Join(tmpDir, "a_file")
			Expect(os.WriteFile(path, []byte{}, 0600)).To(Succeed())

			Expect(RemoveContents(path)).To(Succeed())
			Expect(path).NotTo(BeAnExistingFile())
		})
	})
})

// Builds the tree with chdir since the resulting absolute paths exceed
// PATH_MAX.
func createDirectories(baseDir string, depth, namelength int) {
	previousWorkingDir, err := os.Getwd()
	Expect(err).NotTo(HaveOccurred())
	defer func() {
		Expect(os.Chdir(previousWorkingDir)).To(Succeed())
	}()

	Expect(os.Chdir(baseDir)).To(Succeed())
	for h := 0; h < depth; h++ {
		name := ""
		for len(name) < namelength {
			name += strconv.Itoa(h)
		}
		name = name[:namelength]
		Expect(os.Mkdir(name, 0755)).To(Succeed())
		Expect(os.Chdir(name)).To(Succeed())
	}
}
