package mmcm_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/clklab/drpsim/mmcm"
)

var _ = Describe("ProfileConfig", func() {
	It("should provide a valid default", func() {
		config := mmcm.DefaultProfileConfig()
		Expect(config.Validate()).To(Succeed())

		profiles, err := config.ClockProfiles()
		Expect(err).NotTo(HaveOccurred())
		Expect(profiles).To(HaveLen(4))
	})

	It("should survive a save/load round trip", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "profiles.json")

		config := mmcm.DefaultProfileConfig()
		Expect(config.Save(path)).To(Succeed())

		loaded, err := mmcm.LoadProfileConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(config))
	})

	It("should resolve bandwidth strings", func() {
		config := mmcm.DefaultProfileConfig()
		config.Profiles[0].Bandwidth = "OPTIMIZED"

		profiles, err := config.ClockProfiles()
		Expect(err).NotTo(HaveOccurred())
		Expect(profiles[0].Bandwidth).To(Equal(mmcm.BandwidthHigh))
	})

	It("should reject an unknown bandwidth string", func() {
		config := mmcm.DefaultProfileConfig()
		config.Profiles[1].Bandwidth = "MEDIUM"

		_, err := config.ClockProfiles()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("profile 1"))
	})

	It("should reject out-of-range parameters with the profile index", func() {
		config := mmcm.DefaultProfileConfig()
		config.Profiles[3].OutputDivide = 129

		_, err := config.ClockProfiles()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("profile 3"))
	})

	It("should reject an empty config", func() {
		config := &mmcm.ProfileConfig{}
		Expect(config.Validate()).NotTo(Succeed())
	})

	It("should reject more profiles than the selector can address", func() {
		config := mmcm.DefaultProfileConfig()
		config.Profiles = append(config.Profiles, config.Profiles[0])
		Expect(config.Validate()).NotTo(Succeed())
	})

	It("should report a missing config file", func() {
		_, err := mmcm.LoadProfileConfig("/nonexistent/profiles.json")
		Expect(err).To(HaveOccurred())
	})

	It("should report malformed JSON", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "broken.json")
		Expect(os.WriteFile(path, []byte("{not json"), 0644)).To(Succeed())

		_, err := mmcm.LoadProfileConfig(path)
		Expect(err).To(HaveOccurred())
	})
})
