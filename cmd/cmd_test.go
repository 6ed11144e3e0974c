package cmd

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("loadConfig", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		GinkgoT().Setenv("NODE_ENV", "")
		GinkgoT().Setenv("DOCKER_ENV", "")
		GinkgoT().Setenv("DATABASE_URL", "")
		GinkgoT().Setenv("NEXTAUTH_URL", "")
		GinkgoT().Setenv("VERCEL_URL", "")

		yml := strings.Join([]string{
			"env: development",
			"database:",
			"  source: postgres://localhost/vacations",
			"  max_open_conns: 10",
			"  max_idle_conns: 5",
			"auth:",
			"  session_secret: " + strings.Repeat("s", 32),
		}, "\n") + "\n"
		Expect(os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600)).To(Succeed())
	})

	It("falls back to localhost when no deployment url is set", func() {
		cfg, err := loadConfig(dir)
		Expect(err).NotTo(HaveOccurred())

		u, err := cfg.Auth.ResolveBaseURL(cfg.IsProduction())
		Expect(err).NotTo(HaveOccurred())
		Expect(u.String()).To(Equal("http://localhost:3000"))
	})

	It("honours NEXTAUTH_URL and VERCEL_URL in development", func() {
		GinkgoT().Setenv("NEXTAUTH_URL", "https://portal.example.com")
		GinkgoT().Setenv("VERCEL_URL", "portal-git-main.vercel.app")

		cfg, err := loadConfig(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Auth.VercelURL).To(Equal("portal-git-main.vercel.app"))

		u, err := cfg.Auth.ResolveBaseURL(cfg.IsProduction())
		Expect(err).NotTo(HaveOccurred())
		Expect(u.String()).To(Equal("https://portal.example.com"))
	})

	It("uses VERCEL_URL when NEXTAUTH_URL is unset", func() {
		GinkgoT().Setenv("VERCEL_URL", "portal-git-main.vercel.app")

		cfg, err := loadConfig(dir)
		Expect(err).NotTo(HaveOccurred())

		u, err := cfg.Auth.ResolveBaseURL(cfg.IsProduction())
		Expect(err).NotTo(HaveOccurred())
		Expect(u.String()).To(Equal("https://portal-git-main.vercel.app"))
	})
})
